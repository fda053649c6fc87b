// Package refdata provides read-only lookups against the reference store:
// warehouses, customers, product variants, and SKU-bin mappings. The store
// is owned and mutated elsewhere; this gateway only reads it.
package refdata

import (
	"slices"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Warehouse is a physical fulfillment location.
type Warehouse struct {
	ID     primitive.ObjectID `bson:"_id" json:"id"`
	Tenant string             `bson:"tenant" json:"tenant"`
	Name   string             `bson:"name" json:"name"`
	Code   string             `bson:"code" json:"code"`
}

// Customer is a tenant-scoped client. A nil Warehouses list means the
// customer may use every warehouse in the tenant.
type Customer struct {
	ID         primitive.ObjectID   `bson:"_id" json:"id"`
	Tenant     string               `bson:"tenant" json:"tenant"`
	Name       string               `bson:"name" json:"name"`
	Code       string               `bson:"code" json:"code"`
	Warehouses []primitive.ObjectID `bson:"warehouses,omitempty" json:"warehouses,omitempty"`
}

// AllowsWarehouse reports whether the customer may place documents against
// the given warehouse. An absent allow-list means all warehouses.
func (c *Customer) AllowsWarehouse(warehouseID primitive.ObjectID) bool {
	if c.Warehouses == nil {
		return true
	}
	return slices.Contains(c.Warehouses, warehouseID)
}

// UOMConversion configures one base→target unit-of-measure step for a variant.
type UOMConversion struct {
	BaseUOM   string `bson:"baseUom" json:"baseUom"`
	TargetUOM string `bson:"targetUom" json:"targetUom"`
	Factor    int    `bson:"conversion" json:"conversion"`
}

// ProductVariant is a sellable SKU scoped to a tenant and customer.
type ProductVariant struct {
	ID                    primitive.ObjectID `bson:"_id" json:"id"`
	Tenant                string             `bson:"tenant" json:"tenant"`
	Customer              primitive.ObjectID `bson:"customer" json:"customer"`
	Warehouse             primitive.ObjectID `bson:"warehouse" json:"warehouse"`
	SKU                   string             `bson:"sku" json:"sku"`
	ProductID             string             `bson:"productId" json:"productId"`
	Name                  string             `bson:"name" json:"name"`
	FnSKU                 string             `bson:"fnSku" json:"fnSku"`
	Attributes            map[string]any     `bson:"attributes,omitempty" json:"attributes,omitempty"`
	MarketplaceAttributes map[string]any     `bson:"marketplaceAttributes,omitempty" json:"marketplaceAttributes,omitempty"`
	BaseUOM               string             `bson:"baseUom" json:"baseUom"`
	UOMConfiguration      []UOMConversion    `bson:"uomConfiguration,omitempty" json:"uomConfiguration,omitempty"`
}

// ASIN returns the variant's marketplace ASIN attribute, if configured.
func (v *ProductVariant) ASIN() string {
	if v.MarketplaceAttributes == nil {
		return ""
	}
	if asin, ok := v.MarketplaceAttributes["asin"].(string); ok {
		return asin
	}
	return ""
}

// MatchesFormFactor reports whether the candidate form factor matches the
// variant's base unit of measure or any configured base/target unit,
// case-insensitively.
func (v *ProductVariant) MatchesFormFactor(candidate string) bool {
	if strings.EqualFold(candidate, v.BaseUOM) {
		return true
	}
	for _, uom := range v.UOMConfiguration {
		if strings.EqualFold(candidate, uom.BaseUOM) || strings.EqualFold(candidate, uom.TargetUOM) {
			return true
		}
	}
	return false
}

// SkuBinMapping records the bin placement for a product variant.
type SkuBinMapping struct {
	ID               primitive.ObjectID `bson:"_id" json:"id"`
	Product          primitive.ObjectID `bson:"product" json:"product"`
	FormFactor       string             `bson:"formFactor" json:"formFactor"`
	NestedFormFactor string             `bson:"nestedFormFactor" json:"nestedFormFactor"`
	LotID            string             `bson:"lotId" json:"lotId"`
}
