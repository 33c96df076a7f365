package domain

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CartLine is one customizable, quantity-bearing product reference in a
// user's cart. Lines are embedded in the user document and have no
// lifecycle of their own.
type CartLine struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ProductID     primitive.ObjectID `bson:"product" json:"product"`
	Quantity      int                `bson:"quantity" json:"quantity"`
	Customization Customization      `bson:"customization" json:"customization"`
}

// Key identifies a line within a cart: the same product with the same
// customization merges into one line instead of duplicating.
func (l CartLine) Key() string {
	return l.ProductID.Hex() + "|" + l.Customization.Key()
}

// CartLineView is a cart line resolved with current product details for
// display. The price on the product is informational only; orders snapshot
// their own prices.
type CartLineView struct {
	CartLine
	Product *Product `json:"productDetails,omitempty"`
}
