package apiclient

import (
	"bytes"
	"encoding/json"
)

// PageMeta carrega os campos opcionais do envelope paginado.
type PageMeta struct {
	Total  *int
	Limit  *int
	Offset *int
}

type envelope struct {
	Success *bool           `json:"success"`
	Data    json.RawMessage `json:"data"`
	Total   *int            `json:"total"`
	Limit   *int            `json:"limit"`
	Offset  *int            `json:"offset"`
}

// decodeBody aceita tanto {success, data, total?, limit?, offset?} quanto
// o payload cru, e decodifica o conteúdo útil em dst.
func decodeBody(raw []byte, dst any) (PageMeta, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return PageMeta{}, nil
	}
	if raw[0] == '{' {
		var env envelope
		if err := json.Unmarshal(raw, &env); err == nil && env.Success != nil && len(env.Data) > 0 {
			meta := PageMeta{Total: env.Total, Limit: env.Limit, Offset: env.Offset}
			if dst == nil {
				return meta, nil
			}
			return meta, json.Unmarshal(env.Data, dst)
		}
	}
	if dst == nil {
		return PageMeta{}, nil
	}
	return PageMeta{}, json.Unmarshal(raw, dst)
}
