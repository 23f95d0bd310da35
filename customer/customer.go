// Package customer generates synthetic bank customers for registration tests.
//
// A customer's first name is derived from its post code, so a test can check the relationship
// between the two without the application echoing anything back.
package customer

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"

	"github.com/brianvoe/gofakeit/v6"
)

// PostCodeLength is the number of decimal digits in a generated post code.
const PostCodeLength = 10

// Customer is a locally generated customer record. It is never modified after creation.
type Customer struct {
	PostCode  string `json:"post_code"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// Generator produces customers. Last names come from a faker that can be seeded; post codes
// always come from crypto/rand.
type Generator struct {
	faker *gofakeit.Faker
}

// NewGenerator creates a Generator. A seed of zero means a different sequence of last names on
// every run.
func NewGenerator(seed int64) *Generator {
	return &Generator{faker: gofakeit.New(seed)}
}

// NewCustomer returns a customer with a fresh post code, the first name derived from it, and a
// random last name.
func (g *Generator) NewCustomer() (Customer, error) {
	postCode, err := GeneratePostCode()
	if err != nil {
		return Customer{}, err
	}
	firstName, err := DeriveFirstName(postCode)
	if err != nil {
		return Customer{}, err
	}
	return Customer{PostCode: postCode, FirstName: firstName, LastName: g.faker.LastName()}, nil
}

// Generate returns n new customers.
func (g *Generator) Generate(n int) ([]Customer, error) {
	if n < 0 {
		return nil, fmt.Errorf("customer count must not be negative, got %d", n)
	}
	ret := make([]Customer, 0, n)
	for i := 0; i < n; i++ {
		c, err := g.NewCustomer()
		if err != nil {
			return nil, err
		}
		ret = append(ret, c)
	}
	return ret, nil
}

// GeneratePostCode returns PostCodeLength random decimal digits.
func GeneratePostCode() (string, error) {
	var b strings.Builder
	ten := big.NewInt(10)
	for i := 0; i < PostCodeLength; i++ {
		d, err := rand.Int(rand.Reader, ten)
		if err != nil {
			return "", fmt.Errorf("could not generate post code: %w", err)
		}
		b.WriteByte(byte('0' + d.Int64()))
	}
	return b.String(), nil
}

// DeriveFirstName maps each pair of digits in the post code, read as a number n, to the letter
// 'a'+n%26, and capitalizes the result. It returns an error unless the post code is exactly
// PostCodeLength decimal digits.
func DeriveFirstName(postCode string) (string, error) {
	if len(postCode) != PostCodeLength {
		return "", fmt.Errorf("post code must have %d digits, got %q", PostCodeLength, postCode)
	}
	for _, c := range postCode {
		if c < '0' || c > '9' {
			return "", fmt.Errorf("post code must contain only digits, got %q", postCode)
		}
	}
	name := make([]byte, 0, PostCodeLength/2)
	for i := 0; i < PostCodeLength; i += 2 {
		n := int(postCode[i]-'0')*10 + int(postCode[i+1]-'0')
		name = append(name, byte('a'+n%26))
	}
	name[0] -= 'a' - 'A'
	return string(name), nil
}
