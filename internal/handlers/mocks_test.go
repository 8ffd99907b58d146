package handlers

import (
	"context"
	"errors"
	"io"
	"sync"

	"github.com/Werneck0live/vincipitch-dashboard/internal/apiclient"
	"github.com/Werneck0live/vincipitch-dashboard/internal/models"
)

// apiMock implementa Backend com um campo Fn por método.
type apiMock struct {
	ListarEmpresasFn          func(ctx context.Context, p apiclient.ListarEmpresasParams) (apiclient.EmpresaPage, error)
	ObterEmpresaFn            func(ctx context.Context, id string) (*models.Empresa, error)
	CriarEmpresaFn            func(ctx context.Context, in models.EmpresaCreate) (*models.Empresa, error)
	AtualizarEmpresaFn        func(ctx context.Context, id string, in models.EmpresaUpdate) (*models.Empresa, error)
	DeletarEmpresaFn          func(ctx context.Context, id string) (apiclient.Resultado, error)
	ListarSetoresFn           func(ctx context.Context) ([]models.Setor, error)
	UploadDocumentoFn         func(ctx context.Context, empresaID, filename string, r io.Reader) (*models.Documento, error)
	ListarDocumentosFn        func(ctx context.Context, empresaID string) ([]models.Documento, error)
	DeletarDocumentoFn        func(ctx context.Context, empresaID, documentoID string) error
	ProcessarAnaliseFn        func(ctx context.Context, empresaID string) (apiclient.Resultado, error)
	ProcessarLoteFn           func(ctx context.Context, empresaIDs []string) (apiclient.Resultado, error)
	ObterAnaliseFn            func(ctx context.Context, id string) (*models.Analise, error)
	ObterAnaliseEmpresaFn     func(ctx context.Context, empresaID string) (*models.Analise, error)
	ObterRankingGeralFn       func(ctx context.Context, limite, offset int) (*models.RankingResponse, error)
	ObterRankingSetorFn       func(ctx context.Context, setor models.Setor, limite int) (*models.RankingResponse, error)
	ObterEstatisticasFn       func(ctx context.Context) ([]models.EstatisticasSetor, error)
	FiltrarRankingFn          func(ctx context.Context, f models.FiltrosRanking) (*models.RankingResponse, error)
	CompararEmpresasFn        func(ctx context.Context, empresaAID, empresaBID string) (*models.Comparacao, error)
	ObterGraficoRadarFn       func(ctx context.Context, analiseID string) (*apiclient.Blob, error)
	ObterGraficoComparativoFn func(ctx context.Context, empresaAID, empresaBID string) (*apiclient.Blob, error)
	ObterGraficoBarrasFn      func(ctx context.Context, setor models.Setor, limite int) (*apiclient.Blob, error)
	ExportarEmpresaFn         func(ctx context.Context, empresaID string, f apiclient.Formato) (*apiclient.Blob, error)
	ExportarComparacaoFn      func(ctx context.Context, empresaAID, empresaBID string, f apiclient.Formato) (*apiclient.Blob, error)
	ExportarRankingFn         func(ctx context.Context, setor models.Setor, limite int, f apiclient.Formato) (*apiclient.Blob, error)
}

func (m *apiMock) ListarEmpresas(ctx context.Context, p apiclient.ListarEmpresasParams) (apiclient.EmpresaPage, error) {
	if m.ListarEmpresasFn == nil {
		return apiclient.EmpresaPage{}, errors.New("ListarEmpresasFn not set")
	}
	return m.ListarEmpresasFn(ctx, p)
}

func (m *apiMock) ObterEmpresa(ctx context.Context, id string) (*models.Empresa, error) {
	if m.ObterEmpresaFn == nil {
		return nil, errors.New("ObterEmpresaFn not set")
	}
	return m.ObterEmpresaFn(ctx, id)
}

func (m *apiMock) CriarEmpresa(ctx context.Context, in models.EmpresaCreate) (*models.Empresa, error) {
	if m.CriarEmpresaFn == nil {
		return nil, errors.New("CriarEmpresaFn not set")
	}
	return m.CriarEmpresaFn(ctx, in)
}

func (m *apiMock) AtualizarEmpresa(ctx context.Context, id string, in models.EmpresaUpdate) (*models.Empresa, error) {
	if m.AtualizarEmpresaFn == nil {
		return nil, errors.New("AtualizarEmpresaFn not set")
	}
	return m.AtualizarEmpresaFn(ctx, id, in)
}

func (m *apiMock) DeletarEmpresa(ctx context.Context, id string) (apiclient.Resultado, error) {
	if m.DeletarEmpresaFn == nil {
		return apiclient.Resultado{}, errors.New("DeletarEmpresaFn not set")
	}
	return m.DeletarEmpresaFn(ctx, id)
}

func (m *apiMock) ListarSetores(ctx context.Context) ([]models.Setor, error) {
	if m.ListarSetoresFn == nil {
		return nil, errors.New("ListarSetoresFn not set")
	}
	return m.ListarSetoresFn(ctx)
}

func (m *apiMock) UploadDocumento(ctx context.Context, empresaID, filename string, r io.Reader) (*models.Documento, error) {
	if m.UploadDocumentoFn == nil {
		return nil, errors.New("UploadDocumentoFn not set")
	}
	return m.UploadDocumentoFn(ctx, empresaID, filename, r)
}

func (m *apiMock) ListarDocumentos(ctx context.Context, empresaID string) ([]models.Documento, error) {
	if m.ListarDocumentosFn == nil {
		return nil, errors.New("ListarDocumentosFn not set")
	}
	return m.ListarDocumentosFn(ctx, empresaID)
}

func (m *apiMock) DeletarDocumento(ctx context.Context, empresaID, documentoID string) error {
	if m.DeletarDocumentoFn == nil {
		return errors.New("DeletarDocumentoFn not set")
	}
	return m.DeletarDocumentoFn(ctx, empresaID, documentoID)
}

func (m *apiMock) ProcessarAnalise(ctx context.Context, empresaID string) (apiclient.Resultado, error) {
	if m.ProcessarAnaliseFn == nil {
		return apiclient.Resultado{}, errors.New("ProcessarAnaliseFn not set")
	}
	return m.ProcessarAnaliseFn(ctx, empresaID)
}

func (m *apiMock) ProcessarLote(ctx context.Context, empresaIDs []string) (apiclient.Resultado, error) {
	if m.ProcessarLoteFn == nil {
		return apiclient.Resultado{}, errors.New("ProcessarLoteFn not set")
	}
	return m.ProcessarLoteFn(ctx, empresaIDs)
}

func (m *apiMock) ObterAnalise(ctx context.Context, id string) (*models.Analise, error) {
	if m.ObterAnaliseFn == nil {
		return nil, errors.New("ObterAnaliseFn not set")
	}
	return m.ObterAnaliseFn(ctx, id)
}

func (m *apiMock) ObterAnaliseEmpresa(ctx context.Context, empresaID string) (*models.Analise, error) {
	if m.ObterAnaliseEmpresaFn == nil {
		return nil, errors.New("ObterAnaliseEmpresaFn not set")
	}
	return m.ObterAnaliseEmpresaFn(ctx, empresaID)
}

func (m *apiMock) ObterRankingGeral(ctx context.Context, limite, offset int) (*models.RankingResponse, error) {
	if m.ObterRankingGeralFn == nil {
		return nil, errors.New("ObterRankingGeralFn not set")
	}
	return m.ObterRankingGeralFn(ctx, limite, offset)
}

func (m *apiMock) ObterRankingSetor(ctx context.Context, setor models.Setor, limite int) (*models.RankingResponse, error) {
	if m.ObterRankingSetorFn == nil {
		return nil, errors.New("ObterRankingSetorFn not set")
	}
	return m.ObterRankingSetorFn(ctx, setor, limite)
}

func (m *apiMock) ObterEstatisticas(ctx context.Context) ([]models.EstatisticasSetor, error) {
	if m.ObterEstatisticasFn == nil {
		return nil, errors.New("ObterEstatisticasFn not set")
	}
	return m.ObterEstatisticasFn(ctx)
}

func (m *apiMock) FiltrarRanking(ctx context.Context, f models.FiltrosRanking) (*models.RankingResponse, error) {
	if m.FiltrarRankingFn == nil {
		return nil, errors.New("FiltrarRankingFn not set")
	}
	return m.FiltrarRankingFn(ctx, f)
}

func (m *apiMock) CompararEmpresas(ctx context.Context, empresaAID, empresaBID string) (*models.Comparacao, error) {
	if m.CompararEmpresasFn == nil {
		return nil, errors.New("CompararEmpresasFn not set")
	}
	return m.CompararEmpresasFn(ctx, empresaAID, empresaBID)
}

func (m *apiMock) ObterGraficoRadar(ctx context.Context, analiseID string) (*apiclient.Blob, error) {
	if m.ObterGraficoRadarFn == nil {
		return nil, errors.New("ObterGraficoRadarFn not set")
	}
	return m.ObterGraficoRadarFn(ctx, analiseID)
}

func (m *apiMock) ObterGraficoComparativo(ctx context.Context, empresaAID, empresaBID string) (*apiclient.Blob, error) {
	if m.ObterGraficoComparativoFn == nil {
		return nil, errors.New("ObterGraficoComparativoFn not set")
	}
	return m.ObterGraficoComparativoFn(ctx, empresaAID, empresaBID)
}

func (m *apiMock) ObterGraficoBarras(ctx context.Context, setor models.Setor, limite int) (*apiclient.Blob, error) {
	if m.ObterGraficoBarrasFn == nil {
		return nil, errors.New("ObterGraficoBarrasFn not set")
	}
	return m.ObterGraficoBarrasFn(ctx, setor, limite)
}

func (m *apiMock) ExportarEmpresa(ctx context.Context, empresaID string, f apiclient.Formato) (*apiclient.Blob, error) {
	if m.ExportarEmpresaFn == nil {
		return nil, errors.New("ExportarEmpresaFn not set")
	}
	return m.ExportarEmpresaFn(ctx, empresaID, f)
}

func (m *apiMock) ExportarComparacao(ctx context.Context, empresaAID, empresaBID string, f apiclient.Formato) (*apiclient.Blob, error) {
	if m.ExportarComparacaoFn == nil {
		return nil, errors.New("ExportarComparacaoFn not set")
	}
	return m.ExportarComparacaoFn(ctx, empresaAID, empresaBID, f)
}

func (m *apiMock) ExportarRanking(ctx context.Context, setor models.Setor, limite int, f apiclient.Formato) (*apiclient.Blob, error) {
	if m.ExportarRankingFn == nil {
		return nil, errors.New("ExportarRankingFn not set")
	}
	return m.ExportarRankingFn(ctx, setor, limite, f)
}

type pubMock struct {
	mu     sync.Mutex
	events []models.AnalysisEvent
	Err    error
}

func (p *pubMock) PublishEvent(_ context.Context, ev models.AnalysisEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, ev)
	return p.Err
}

func (p *pubMock) Events() []models.AnalysisEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]models.AnalysisEvent(nil), p.events...)
}
