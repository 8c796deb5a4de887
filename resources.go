package emburse

import (
	"context"
	"fmt"
	"time"
)

var (
	_ Lister[*Account]    = (*Account)(nil)
	_ Retriever[*Account] = (*Account)(nil)
	_ Refresher           = (*Account)(nil)

	_ Lister[*Allowance]    = (*Allowance)(nil)
	_ Retriever[*Allowance] = (*Allowance)(nil)

	_ Lister[*Card]    = (*Card)(nil)
	_ Retriever[*Card] = (*Card)(nil)
	_ Creator[*Card]   = (*Card)(nil)
	_ Updater          = (*Card)(nil)
	_ Deleter          = (*Card)(nil)

	_ Creator[*Category]   = (*Category)(nil)
	_ Creator[*Department] = (*Department)(nil)
	_ Creator[*Label]      = (*Label)(nil)
	_ Creator[*Location]   = (*Location)(nil)
	_ Creator[*Member]     = (*Member)(nil)
	_ Creator[*SharedLink] = (*SharedLink)(nil)

	_ Retriever[*Company] = (*Company)(nil)

	_ Lister[*Statement] = (*Statement)(nil)

	_ Lister[*Transaction] = (*Transaction)(nil)
	_ Updater              = (*Transaction)(nil)
)

// Account is a funding account
type Account struct{ *Object }

func (a *Account) List(ctx context.Context, params Params) ([]*Account, error) {
	return list[*Account](ctx, a.Object, params)
}

func (a *Account) Retrieve(ctx context.Context, id string) (*Account, error) {
	return retrieve[*Account](ctx, a.Object, id)
}

func (a *Account) Refresh(ctx context.Context) error { return a.refresh(ctx) }

func (a *Account) Name() string              { return a.GetString("name") }
func (a *Account) Number() string            { return a.GetString("number") }
func (a *Account) LedgerBalance() float64    { return a.GetFloat("ledger_balance") }
func (a *Account) AvailableBalance() float64 { return a.GetFloat("available_balance") }
func (a *Account) CreatedAt() time.Time      { return a.GetTime("created_at") }

// Statement returns a statement bound to this account, ready to export
func (a *Account) Statement() *Statement {
	s := &Statement{a.spawnAs("statement")}
	s.Set("account_id", a.ID())
	return s
}

// Allowance is a spending limit attached to a card
type Allowance struct{ *Object }

func (a *Allowance) List(ctx context.Context, params Params) ([]*Allowance, error) {
	return list[*Allowance](ctx, a.Object, params)
}

func (a *Allowance) Retrieve(ctx context.Context, id string) (*Allowance, error) {
	return retrieve[*Allowance](ctx, a.Object, id)
}

func (a *Allowance) Refresh(ctx context.Context) error { return a.refresh(ctx) }

// Create validates params and builds an allowance locally. Nothing is sent:
// the allowance travels to the API as part of a card.
func (a *Allowance) Create(_ context.Context, params Params) (*Allowance, error) {
	info, err := a.info()
	if err != nil {
		return nil, err
	}
	payload, err := info.schema.validate(a.kind, params)
	if err != nil {
		return nil, err
	}
	return newResource(a.kind, a.token, a.backend, payload).(*Allowance), nil
}

func (a *Allowance) Interval() string          { return a.GetString("interval") }
func (a *Allowance) Amount() float64           { return a.GetFloat("amount") }
func (a *Allowance) TransactionLimit() float64 { return a.GetFloat("transaction_limit") }

// Card is a physical or virtual payment card
type Card struct{ *Object }

func (c *Card) List(ctx context.Context, params Params) ([]*Card, error) {
	return list[*Card](ctx, c.Object, params)
}

func (c *Card) Retrieve(ctx context.Context, id string) (*Card, error) {
	return retrieve[*Card](ctx, c.Object, id)
}

func (c *Card) Refresh(ctx context.Context) error { return c.refresh(ctx) }

// Create issues a card. Params require allowance (an *Allowance),
// description and is_virtual.
func (c *Card) Create(ctx context.Context, params Params) (*Card, error) {
	return create[*Card](ctx, c.Object, params)
}

func (c *Card) Update(ctx context.Context, params Params) error { return c.update(ctx, params) }
func (c *Card) Delete(ctx context.Context, id string) error     { return c.delete(ctx, id) }

func (c *Card) Description() string   { return c.GetString("description") }
func (c *Card) LastFour() string      { return c.GetString("last_four") }
func (c *Card) State() string         { return c.GetString("state") }
func (c *Card) IsVirtual() bool       { return c.GetBool("is_virtual") }
func (c *Card) Expiration() time.Time { return c.GetTime("expiration") }
func (c *Card) CreatedAt() time.Time  { return c.GetTime("created_at") }

func (c *Card) Allowance() *Allowance {
	a, _ := c.fields["allowance"].(*Allowance)
	return a
}

func (c *Card) Category() *Category {
	cat, _ := c.fields["category"].(*Category)
	return cat
}

// Category groups transactions for reporting
type Category struct{ *Object }

func (c *Category) List(ctx context.Context, params Params) ([]*Category, error) {
	return list[*Category](ctx, c.Object, params)
}

func (c *Category) Retrieve(ctx context.Context, id string) (*Category, error) {
	return retrieve[*Category](ctx, c.Object, id)
}

func (c *Category) Refresh(ctx context.Context) error { return c.refresh(ctx) }

func (c *Category) Create(ctx context.Context, params Params) (*Category, error) {
	return create[*Category](ctx, c.Object, params)
}

func (c *Category) Update(ctx context.Context, params Params) error { return c.update(ctx, params) }
func (c *Category) Delete(ctx context.Context, id string) error     { return c.delete(ctx, id) }

func (c *Category) Name() string { return c.GetString("name") }

// Parent returns the parent category, or nil
func (c *Category) Parent() *Category {
	p, _ := c.fields["parent"].(*Category)
	return p
}

// Company is the account holder's company profile
type Company struct{ *Object }

func (c *Company) Retrieve(ctx context.Context, id string) (*Company, error) {
	return retrieve[*Company](ctx, c.Object, id)
}

func (c *Company) Refresh(ctx context.Context) error { return c.refresh(ctx) }

func (c *Company) Name() string { return c.GetString("name") }

// Department is an organizational unit members and cards belong to
type Department struct{ *Object }

func (d *Department) List(ctx context.Context, params Params) ([]*Department, error) {
	return list[*Department](ctx, d.Object, params)
}

func (d *Department) Retrieve(ctx context.Context, id string) (*Department, error) {
	return retrieve[*Department](ctx, d.Object, id)
}

func (d *Department) Refresh(ctx context.Context) error { return d.refresh(ctx) }

func (d *Department) Create(ctx context.Context, params Params) (*Department, error) {
	return create[*Department](ctx, d.Object, params)
}

func (d *Department) Update(ctx context.Context, params Params) error { return d.update(ctx, params) }
func (d *Department) Delete(ctx context.Context, id string) error     { return d.delete(ctx, id) }

func (d *Department) Name() string { return d.GetString("name") }

func (d *Department) Parent() *Department {
	p, _ := d.fields["parent"].(*Department)
	return p
}

// Label tags transactions
type Label struct{ *Object }

func (l *Label) List(ctx context.Context, params Params) ([]*Label, error) {
	return list[*Label](ctx, l.Object, params)
}

func (l *Label) Retrieve(ctx context.Context, id string) (*Label, error) {
	return retrieve[*Label](ctx, l.Object, id)
}

func (l *Label) Refresh(ctx context.Context) error { return l.refresh(ctx) }

func (l *Label) Create(ctx context.Context, params Params) (*Label, error) {
	return create[*Label](ctx, l.Object, params)
}

func (l *Label) Update(ctx context.Context, params Params) error { return l.update(ctx, params) }
func (l *Label) Delete(ctx context.Context, id string) error     { return l.delete(ctx, id) }

func (l *Label) Name() string { return l.GetString("name") }

// Location is an office or site
type Location struct{ *Object }

func (l *Location) List(ctx context.Context, params Params) ([]*Location, error) {
	return list[*Location](ctx, l.Object, params)
}

func (l *Location) Retrieve(ctx context.Context, id string) (*Location, error) {
	return retrieve[*Location](ctx, l.Object, id)
}

func (l *Location) Refresh(ctx context.Context) error { return l.refresh(ctx) }

func (l *Location) Create(ctx context.Context, params Params) (*Location, error) {
	return create[*Location](ctx, l.Object, params)
}

func (l *Location) Update(ctx context.Context, params Params) error { return l.update(ctx, params) }
func (l *Location) Delete(ctx context.Context, id string) error     { return l.delete(ctx, id) }

func (l *Location) Name() string { return l.GetString("name") }

// Member is a user of the company account
type Member struct{ *Object }

func (m *Member) List(ctx context.Context, params Params) ([]*Member, error) {
	return list[*Member](ctx, m.Object, params)
}

func (m *Member) Retrieve(ctx context.Context, id string) (*Member, error) {
	return retrieve[*Member](ctx, m.Object, id)
}

func (m *Member) Refresh(ctx context.Context) error { return m.refresh(ctx) }

// Create always fails: members have no create parameters
func (m *Member) Create(ctx context.Context, params Params) (*Member, error) {
	return create[*Member](ctx, m.Object, params)
}

func (m *Member) Update(ctx context.Context, params Params) error { return m.update(ctx, params) }
func (m *Member) Delete(ctx context.Context, id string) error     { return m.delete(ctx, id) }

func (m *Member) FirstName() string { return m.GetString("first_name") }
func (m *Member) LastName() string  { return m.GetString("last_name") }
func (m *Member) Email() string     { return m.GetString("email") }

// SharedLink grants access to a card through a URL
type SharedLink struct{ *Object }

func (s *SharedLink) List(ctx context.Context, params Params) ([]*SharedLink, error) {
	return list[*SharedLink](ctx, s.Object, params)
}

func (s *SharedLink) Retrieve(ctx context.Context, id string) (*SharedLink, error) {
	return retrieve[*SharedLink](ctx, s.Object, id)
}

func (s *SharedLink) Refresh(ctx context.Context) error { return s.refresh(ctx) }

// Create shares a card. Params require card, the card id.
func (s *SharedLink) Create(ctx context.Context, params Params) (*SharedLink, error) {
	return create[*SharedLink](ctx, s.Object, params)
}

func (s *SharedLink) Update(ctx context.Context, params Params) error { return s.update(ctx, params) }
func (s *SharedLink) Delete(ctx context.Context, id string) error     { return s.delete(ctx, id) }

func (s *SharedLink) URL() string { return s.GetString("url") }

// Statement is a monthly account statement. Statements can be listed and
// exported but not retrieved individually.
type Statement struct{ *Object }

func (s *Statement) List(ctx context.Context, params Params) ([]*Statement, error) {
	return list[*Statement](ctx, s.Object, params)
}

func (s *Statement) AccountID() string {
	v, _ := s.Get("account_id")
	if v == nil {
		return ""
	}
	return fmt.Sprint(v)
}

// Transaction is a card transaction
type Transaction struct{ *Object }

func (t *Transaction) List(ctx context.Context, params Params) ([]*Transaction, error) {
	return list[*Transaction](ctx, t.Object, params)
}

func (t *Transaction) Retrieve(ctx context.Context, id string) (*Transaction, error) {
	return retrieve[*Transaction](ctx, t.Object, id)
}

func (t *Transaction) Refresh(ctx context.Context) error { return t.refresh(ctx) }

func (t *Transaction) Update(ctx context.Context, params Params) error { return t.update(ctx, params) }

func (t *Transaction) Amount() float64 { return t.GetFloat("amount") }
func (t *Transaction) State() string   { return t.GetString("state") }
func (t *Transaction) Note() string    { return t.GetString("note") }
func (t *Transaction) Time() time.Time { return t.GetTime("time") }

func (t *Transaction) Card() *Card {
	c, _ := t.fields["card"].(*Card)
	return c
}

func (t *Transaction) Category() *Category {
	c, _ := t.fields["category"].(*Category)
	return c
}

func (t *Transaction) Department() *Department {
	d, _ := t.fields["department"].(*Department)
	return d
}

func (t *Transaction) Label() *Label {
	l, _ := t.fields["label"].(*Label)
	return l
}

func (t *Transaction) Location() *Location {
	l, _ := t.fields["location"].(*Location)
	return l
}
