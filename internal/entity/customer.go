package entity

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"unicode/utf8"
	"time"
)

const (
	PremiumThreshold = 5
	PremiumDiscount  = 0.15

	minCustomerIDLength = 10
	minPhoneLength      = 10
)

// Purchase is a snapshot of one sale taken at the moment it happened.
// Later changes to the item never reach it.
type Purchase struct {
	ItemName    string    `json:"item_name"`
	ItemCode    string    `json:"item_code"`
	ScheduledAt time.Time `json:"scheduled_at"`
	Quantity    int       `json:"quantity"`
	AmountPaid  float64   `json:"amount_paid"`
	PurchasedAt time.Time `json:"purchased_at"`
}

type CustomerParams struct {
	ID        string
	FirstName string
	LastName  string
	Email     string
	Phone     string
}

type CustomerView struct {
	ID            string `json:"id"`
	FirstName     string `json:"first_name"`
	LastName      string `json:"last_name"`
	FullName      string `json:"full_name"`
	Email         string `json:"email"`
	Phone         string `json:"phone"`
	Premium       bool   `json:"premium"`
	LoyaltyPoints int    `json:"loyalty_points"`
	Purchases     int    `json:"purchases"`
}

// Customer holds identity, loyalty tier, points and purchase history.
// Premium status and points only ever grow, and only through RecordPurchase.
type Customer struct {
	id            string
	firstName     string
	lastName      string
	email         string
	phone         string
	premium       bool
	loyaltyPoints int
	history       []Purchase
}

func NewCustomer(p CustomerParams) (*Customer, error) {
	var errs []error
	if utf8.RuneCountInString(p.ID) < minCustomerIDLength {
		errs = append(errs, invalid("id", fmt.Sprintf("must have at least %d characters", minCustomerIDLength)))
	}
	for _, check := range []error{
		checkPersonName("first_name", p.FirstName),
		checkPersonName("last_name", p.LastName),
		checkEmail(p.Email),
		checkPhone(p.Phone),
	} {
		if check != nil {
			errs = append(errs, check)
		}
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	return &Customer{
		id:        p.ID,
		firstName: p.FirstName,
		lastName:  p.LastName,
		email:     p.Email,
		phone:     p.Phone,
	}, nil
}

func checkPersonName(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return invalid(field, "must be a non-empty string")
	}
	return nil
}

func checkEmail(email string) error {
	if !strings.Contains(email, "@") {
		return invalid("email", "must contain @")
	}
	return nil
}

func checkPhone(phone string) error {
	if utf8.RuneCountInString(phone) < minPhoneLength {
		return invalid("phone", fmt.Sprintf("must have at least %d characters", minPhoneLength))
	}
	return nil
}

func (c *Customer) ID() string         { return c.id }
func (c *Customer) FirstName() string  { return c.firstName }
func (c *Customer) LastName() string   { return c.lastName }
func (c *Customer) Email() string      { return c.email }
func (c *Customer) Phone() string      { return c.phone }
func (c *Customer) IsPremium() bool    { return c.premium }
func (c *Customer) LoyaltyPoints() int { return c.loyaltyPoints }
func (c *Customer) PurchaseCount() int { return len(c.history) }

func (c *Customer) FullName() string {
	return c.firstName + " " + c.lastName
}

func (c *Customer) SetFirstName(name string) error {
	if err := checkPersonName("first_name", name); err != nil {
		return err
	}
	c.firstName = name
	return nil
}

func (c *Customer) SetLastName(name string) error {
	if err := checkPersonName("last_name", name); err != nil {
		return err
	}
	c.lastName = name
	return nil
}

func (c *Customer) SetEmail(email string) error {
	if err := checkEmail(email); err != nil {
		return err
	}
	c.email = email
	return nil
}

func (c *Customer) SetPhone(phone string) error {
	if err := checkPhone(phone); err != nil {
		return err
	}
	c.phone = phone
	return nil
}

// History returns a copy of the purchase history, oldest first.
func (c *Customer) History() []Purchase {
	out := make([]Purchase, len(c.history))
	copy(out, c.history)
	return out
}

// CalculateDiscount returns what a premium customer pays for price. No rounding.
func (c *Customer) CalculateDiscount(price float64) float64 {
	if c.premium {
		return price * (1 - PremiumDiscount)
	}
	return price
}

// RecordPurchase appends p to the history and credits the whole-dollar part of the
// amount as points. It reports true when this purchase made the customer premium.
func (c *Customer) RecordPurchase(p Purchase) bool {
	c.history = append(c.history, p)
	if p.AmountPaid > 0 {
		c.loyaltyPoints += int(math.Trunc(p.AmountPaid))
	}

	if !c.premium && len(c.history) >= PremiumThreshold {
		c.premium = true
		return true
	}
	return false
}

func (c *Customer) Describe() string {
	tier := "Regular"
	if c.premium {
		tier = "PREMIUM"
	}

	var b strings.Builder
	b.WriteString(strings.Repeat("=", 50) + "\n")
	b.WriteString("CUSTOMER\n")
	b.WriteString(strings.Repeat("=", 50) + "\n")
	fmt.Fprintf(&b, "ID: %s\n", c.id)
	fmt.Fprintf(&b, "Name: %s\n", c.FullName())
	fmt.Fprintf(&b, "Email: %s\n", c.email)
	fmt.Fprintf(&b, "Phone: %s\n", c.phone)
	fmt.Fprintf(&b, "Tier: %s\n", tier)
	fmt.Fprintf(&b, "Loyalty points: %d\n", c.loyaltyPoints)
	fmt.Fprintf(&b, "Purchases: %d\n", len(c.history))
	b.WriteString(strings.Repeat("=", 50) + "\n")
	return b.String()
}

func (c *Customer) String() string {
	tier := "Regular"
	if c.premium {
		tier = "PREMIUM"
	}
	return fmt.Sprintf("Customer: %s | ID: %s | Tier: %s", c.FullName(), c.id, tier)
}

func (c *Customer) View() CustomerView {
	return CustomerView{
		ID:            c.id,
		FirstName:     c.firstName,
		LastName:      c.lastName,
		FullName:      c.FullName(),
		Email:         c.email,
		Phone:         c.phone,
		Premium:       c.premium,
		LoyaltyPoints: c.loyaltyPoints,
		Purchases:     len(c.history),
	}
}
