package cart

import "github.com/RanjithMathi/freshto-gateway/internal/money"

// Line is one product entry in a customer's cart, unique by product ID.
type Line struct {
	ProductID int64       `json:"productId"`
	Title     string      `json:"title"`
	UnitPrice money.Paise `json:"unitPrice"`
	Quantity  int         `json:"quantity"`
}

func (l Line) Total() money.Paise {
	return l.UnitPrice * money.Paise(l.Quantity)
}

type NoticeType string

const (
	NoticeSuccess NoticeType = "success"
	NoticeInfo    NoticeType = "info"
)

// Notice is the transient notification emitted by cart mutations,
// surfaced to the app as a toast.
type Notice struct {
	Message string     `json:"message"`
	Type    NoticeType `json:"type"`
}
