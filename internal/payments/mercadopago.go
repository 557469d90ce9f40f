package payments

import (
	"context"

	mpconfig "github.com/mercadopago/sdk-go/pkg/config"
	"github.com/mercadopago/sdk-go/pkg/preference"
)

// Client wraps Mercado Pago preference creation. The payment protocol
// itself lives entirely on the gateway side; we only hand it the order.
type Client struct {
	pref preference.Client
}

func New(accessToken string) (*Client, error) {
	cfg, err := mpconfig.New(accessToken)
	if err != nil {
		return nil, err
	}
	return &Client{pref: preference.NewClient(cfg)}, nil
}

type Item struct {
	ID        string
	Title     string
	Quantity  int
	UnitPrice float64
}

type Preference struct {
	ID        string
	InitPoint string
}

// CreatePreference registers the order with the gateway and returns the
// preference id plus the checkout URL the client is sent to.
func (c *Client) CreatePreference(
	ctx context.Context,
	externalReference string,
	items []Item,
) (*Preference, error) {

	resp, err := c.pref.Create(ctx, buildRequest(externalReference, items))
	if err != nil {
		return nil, err
	}

	return &Preference{
		ID:        resp.ID,
		InitPoint: resp.InitPoint,
	}, nil
}

func buildRequest(externalReference string, items []Item) preference.Request {
	req := preference.Request{
		ExternalReference: externalReference,
	}
	for _, it := range items {
		req.Items = append(req.Items, preference.ItemRequest{
			ID:         it.ID,
			Title:      it.Title,
			Quantity:   it.Quantity,
			UnitPrice:  it.UnitPrice,
			CurrencyID: "BRL",
		})
	}
	return req
}
