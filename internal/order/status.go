package order

import (
	"strings"

	"github.com/MikeMC777/bebidas-delivery/internal/apperr"
)

// Status of an order. PENDING is the only state that moves; ACCEPTED and
// REJECTED are final.
type Status string

const (
	StatusPending  Status = "PENDING"
	StatusAccepted Status = "ACCEPTED"
	StatusRejected Status = "REJECTED"
)

func ParseStatus(s string) (Status, error) {
	switch st := Status(strings.ToUpper(strings.TrimSpace(s))); st {
	case StatusPending, StatusAccepted, StatusRejected:
		return st, nil
	}
	return "", apperr.Validation("unknown status %q", s)
}

func (s Status) IsTerminal() bool {
	return s == StatusAccepted || s == StatusRejected
}

func (s Status) CanTransitionTo(next Status) bool {
	return s == StatusPending && next.IsTerminal()
}

// StatusView is the read-only rendering of a status for the customer. Exactly
// one of the flags is set.
type StatusView struct {
	Pending  bool   `json:"pending"`
	Accepted bool   `json:"accepted"`
	Rejected bool   `json:"rejected"`
	Label    string `json:"label"`
	Message  string `json:"message"`
}

func (s Status) View() StatusView {
	switch s {
	case StatusAccepted:
		return StatusView{Accepted: true, Label: "Aceito", Message: "Seu pedido foi aceito e está sendo preparado!"}
	case StatusRejected:
		return StatusView{Rejected: true, Label: "Recusado", Message: "Infelizmente seu pedido foi recusado"}
	default:
		return StatusView{Pending: true, Label: "Pendente", Message: "Aguardando confirmação do estabelecimento"}
	}
}
