package cart

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	carterrors "github.com/abgdnv/cartkeeper/internal/errors"
	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Product is a validated name/price pair ready to be added to a cart.
type Product struct {
	Name  string
	Price float64
}

// ProductInput carries the raw name and price text attached to an "add item" affordance.
type ProductInput struct {
	Name  string `json:"name"  validate:"required"`
	Price string `json:"price" validate:"required"`
}

// Parse validates the input and converts it to a Product.
// Returns an error wrapping ErrValidation if the name is missing or the price
// is not a finite non-negative number.
func (in ProductInput) Parse() (Product, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Price = strings.TrimSpace(in.Price)

	if err := validate.Struct(in); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			fields := make([]string, 0, len(validationErrors))
			for _, fieldErr := range validationErrors {
				fields = append(fields, fieldErr.Field()+" failed on rule: "+fieldErr.Tag())
			}
			return Product{}, fmt.Errorf("%w: %s", carterrors.ErrValidation, strings.Join(fields, ", "))
		}
		return Product{}, fmt.Errorf("%w: %v", carterrors.ErrValidation, err)
	}

	price, err := strconv.ParseFloat(in.Price, 64)
	if err != nil {
		return Product{}, fmt.Errorf("%w: price %q is not a number", carterrors.ErrValidation, in.Price)
	}
	return NewProduct(in.Name, price)
}

// NewProduct checks an already typed name and price.
func NewProduct(name string, price float64) (Product, error) {
	if strings.TrimSpace(name) == "" {
		return Product{}, fmt.Errorf("%w: name is required", carterrors.ErrValidation)
	}
	if math.IsNaN(price) || math.IsInf(price, 0) {
		return Product{}, fmt.Errorf("%w: price must be finite", carterrors.ErrValidation)
	}
	if price < 0 {
		return Product{}, fmt.Errorf("%w: price must not be negative", carterrors.ErrValidation)
	}
	return Product{Name: name, Price: price}, nil
}
