package model

import (
	"slices"
	"strings"
	"time"
)

// Product is a read-only catalog row.
type Product struct {
	Title string   `json:"title" yaml:"title"`
	Price float64  `json:"price" yaml:"price"`
	Sizes []string `json:"sizes" yaml:"sizes"`
	Color string   `json:"color" yaml:"color"`
	Tags  []string `json:"tags" yaml:"tags"`
}

// Clone returns a copy that shares no slices with p.
func (p Product) Clone() Product {
	p.Sizes = slices.Clone(p.Sizes)
	p.Tags = slices.Clone(p.Tags)
	return p
}

// HasTags reports whether every wanted tag is present on the product.
func (p Product) HasTags(wanted []string) bool {
	for _, w := range wanted {
		if !slices.ContainsFunc(p.Tags, func(t string) bool { return strings.EqualFold(t, w) }) {
			return false
		}
	}
	return true
}

// Order is a read-only order row. Identity is the case-insensitive
// (OrderID, Email) pair.
type Order struct {
	OrderID   string    `json:"order_id" yaml:"order_id"`
	Email     string    `json:"email" yaml:"email"`
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`
}

// Matches reports whether the order is identified by id and email.
func (o Order) Matches(id, email string) bool {
	if id == "" || email == "" {
		return false
	}
	return strings.EqualFold(o.OrderID, id) && strings.EqualFold(o.Email, email)
}

// Decision is the outcome of the cancellation rule.
type Decision struct {
	CancelAllowed bool   `json:"cancel_allowed"`
	Reason        string `json:"reason,omitempty"`
}

type EvidenceKind string

const (
	EvidenceProduct EvidenceKind = "product"
	EvidenceOrder   EvidenceKind = "order"
)

// ProductEvidence is a search hit annotated with the advisory output computed
// for the same request.
type ProductEvidence struct {
	Product
	SizeRecommendation string `json:"size_recommendation,omitempty"`
	ETA                string `json:"eta,omitempty"`
}

// Evidence is one fact gathered by a tool. Exactly one of Product or Order is
// set, matching Kind.
type Evidence struct {
	Kind    EvidenceKind     `json:"kind"`
	Product *ProductEvidence `json:"product,omitempty"`
	Order   *Order           `json:"order,omitempty"`
}

func ProductFact(p ProductEvidence) Evidence {
	p.Product = p.Product.Clone()
	return Evidence{Kind: EvidenceProduct, Product: &p}
}

func OrderFact(o Order) Evidence {
	return Evidence{Kind: EvidenceOrder, Order: &o}
}

// Clone deep-copies the evidence so states never share records.
func (e Evidence) Clone() Evidence {
	out := Evidence{Kind: e.Kind}
	if e.Product != nil {
		p := *e.Product
		p.Product = p.Product.Clone()
		out.Product = &p
	}
	if e.Order != nil {
		o := *e.Order
		out.Order = &o
	}
	return out
}
