package httpclient

import (
	"net"
	"net/http"
	"time"
)

// New cria o *http.Client usado contra o backend de análise.
// http.DefaultClient não tem timeout, então sempre passamos um.
func New(timeout time.Duration) *http.Client {
	t := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   5 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 32, // lote dispara N consultas simultâneas ao mesmo host
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 5 * time.Second,
	}
	return &http.Client{Timeout: timeout, Transport: t}
}
