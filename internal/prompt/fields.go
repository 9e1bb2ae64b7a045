package prompt

import (
	"context"
	"errors"

	"github.com/roach88/inventory/internal/money"
	"github.com/roach88/inventory/internal/product"
)

// Prompt texts.
const (
	IDPrompt       = "Please enter the product id: "
	NamePrompt     = "Please enter your product name: "
	PricePrompt    = "Please enter your product price: " + money.Symbol
	QuantityPrompt = "Please enter your quantity: "
)

// Diagnostics printed before a re-prompt.
const (
	MsgInvalidID       = "that is not a valid id, please enter a number"
	MsgIDOutOfRange    = "this id does not exist, please enter again"
	MsgBlankName       = "product name cannot be empty"
	MsgMissingCents    = "Please enter the cents. ex: 1.23"
	MsgTooManyDecimals = "Please only enter two decimal places"
	MsgInvalidPrice    = "Please enter a valid price"
	MsgInvalidQuantity = "Please enter a whole number"
)

// ID reads a record identifier no greater than maxID.
func (p *Prompter) ID(ctx context.Context, maxID int64) (int64, error) {
	for {
		text, err := p.ReadLine(ctx, IDPrompt)
		if err != nil {
			return 0, err
		}
		id, err := product.ParseID(text)
		if err != nil {
			p.Diagnostic(MsgInvalidID)
			continue
		}
		if id > maxID {
			p.Diagnostic(MsgIDOutOfRange)
			continue
		}
		return id, nil
	}
}

// Name reads a non-blank product name in canonical form.
func (p *Prompter) Name(ctx context.Context) (string, error) {
	for {
		text, err := p.ReadLine(ctx, NamePrompt)
		if err != nil {
			return "", err
		}
		if product.IsBlankName(text) {
			p.Diagnostic(MsgBlankName)
			continue
		}
		return product.NormalizeName(text), nil
	}
}

// Price reads a price in cents.
func (p *Prompter) Price(ctx context.Context) (int64, error) {
	for {
		text, err := p.ReadLine(ctx, PricePrompt)
		if err != nil {
			return 0, err
		}
		cents, err := money.ParseInput(text)
		if err == nil {
			return cents, nil
		}
		p.Diagnostic(priceDiagnostic(err))
	}
}

func priceDiagnostic(err error) string {
	var fe *money.FormatError
	if !errors.As(err, &fe) {
		return MsgInvalidPrice
	}
	switch fe.Reason {
	case money.ReasonMissingCents:
		return MsgMissingCents
	case money.ReasonTooManyDecimal:
		return MsgTooManyDecimals
	default:
		return MsgInvalidPrice
	}
}

// Quantity reads a non-negative whole number.
func (p *Prompter) Quantity(ctx context.Context) (int64, error) {
	for {
		text, err := p.ReadLine(ctx, QuantityPrompt)
		if err != nil {
			return 0, err
		}
		qty, err := product.ParseQuantity(text)
		if err != nil {
			p.Diagnostic(MsgInvalidQuantity)
			continue
		}
		return qty, nil
	}
}
