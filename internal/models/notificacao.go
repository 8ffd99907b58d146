package models

import "time"

type Notificacao struct {
	ID        string     `bson:"_id" json:"id"`
	Tipo      TipoEvento `bson:"tipo" json:"tipo"`
	Titulo    string     `bson:"titulo" json:"titulo"`
	Mensagem  string     `bson:"mensagem" json:"mensagem"`
	EmpresaID string     `bson:"empresa_id,omitempty" json:"empresa_id,omitempty"`
	AnaliseID string     `bson:"analise_id,omitempty" json:"analise_id,omitempty"`
	Lida      bool       `bson:"lida" json:"lida"`
	CriadaEm  time.Time  `bson:"criada_em" json:"criada_em"`
}
