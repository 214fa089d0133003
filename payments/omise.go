package payments

import (
	"fmt"

	"github.com/omise/omise-go"
	"github.com/omise/omise-go/operations"
)

// OmiseGateway creates payment links through the Omise API. A link is a
// provider-hosted payment page; its payment URI is the redirect URL the
// client is sent to.
type OmiseGateway struct {
	client *omise.Client
}

func NewOmiseGateway(publicKey, secretKey string) (*OmiseGateway, error) {
	client, err := omise.NewClient(publicKey, secretKey)
	if err != nil {
		return nil, err
	}
	return &OmiseGateway{client: client}, nil
}

func (g *OmiseGateway) CreateCheckoutSession(req CheckoutRequest) (*CheckoutSession, error) {
	link := &omise.Link{}
	err := g.client.Do(link, &operations.CreateLink{
		Amount:   MinorUnits(req.Amount),
		Currency: Currency,
		Title:    req.ScholarshipName,
		Description: fmt.Sprintf("%s / %s application fee | application=%s ref=%s customer=%s",
			req.UniversityName, req.Degree, req.ApplicationID, req.Reference, req.CustomerEmail),
	})
	if err != nil {
		return nil, err
	}

	return &CheckoutSession{
		Reference:   req.Reference,
		PaymentURL:  link.PaymentURI,
		AmountMinor: link.Amount,
		Currency:    link.Currency,
	}, nil
}
