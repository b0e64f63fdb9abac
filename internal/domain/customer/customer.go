package customer

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"welfare-ledger/internal/pkg/apperrors"
)

var phonePattern = regexp.MustCompile(`^[0-9]{10}$`)

type Customer struct {
	ID        int64      `json:"id"`
	Name      string     `json:"name"`
	Phone     string     `json:"phone"`
	Address   string     `json:"address"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
	DeletedAt *time.Time `json:"deletedAt,omitempty"`
}

// NormalizePhone trims the input and requires exactly ten digits with nothing else.
func NormalizePhone(raw string) (string, error) {
	phone := strings.TrimSpace(raw)
	if !phonePattern.MatchString(phone) {
		return "", apperrors.NewValidationError("phone", "phone must be exactly 10 digits")
	}
	return phone, nil
}

func NewCustomer(name, phone, address string) (*Customer, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.NewValidationError("name", "customer name cannot be empty")
	}
	normalized, err := NormalizePhone(phone)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	return &Customer{
		Name:      name,
		Phone:     normalized,
		Address:   strings.TrimSpace(address),
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// Apply overwrites the editable fields after validating them.
func (c *Customer) Apply(name, phone, address string) error {
	updated, err := NewCustomer(name, phone, address)
	if err != nil {
		return err
	}
	c.Name = updated.Name
	c.Phone = updated.Phone
	c.Address = updated.Address
	c.UpdatedAt = time.Now()
	return nil
}

func (c *Customer) String() string {
	return fmt.Sprintf("%s (%s)", c.Name, c.Phone)
}
