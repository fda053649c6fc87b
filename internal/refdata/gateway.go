package refdata

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/jmallard/manifest/pkg/database"
	"github.com/jmallard/manifest/pkg/pagination"
)

// Reference store collection names.
const (
	CollectionWarehouses     = "warehouses"
	CollectionCustomers      = "customers"
	CollectionVariants       = "productvariants"
	CollectionSkuBinMappings = "skubinmappings"
)

// System defines the public contract for reference data lookups. All
// operations are read-only; lookups that match nothing return ErrNotFound
// and lookups that match more than one record return ErrAmbiguous.
type System interface {
	Handler() *Handler

	FindWarehouse(ctx context.Context, tenant, codeOrName string) (*Warehouse, error)
	FindCustomer(ctx context.Context, tenant, codeOrName string) (*Customer, error)
	FindProductVariant(ctx context.Context, tenant string, customer primitive.ObjectID, sku string) (*ProductVariant, error)
	FindSkuBinMapping(ctx context.Context, variant primitive.ObjectID) (*SkuBinMapping, error)
	FindValidFormFactor(ctx context.Context, tenant string, customer primitive.ObjectID, sku, candidate string) (string, error)

	ListWarehouses(ctx context.Context, tenant string, page pagination.PageRequest) (*pagination.PageResult[Warehouse], error)
	ListCustomers(ctx context.Context, tenant string, page pagination.PageRequest) (*pagination.PageResult[Customer], error)
}

type gateway struct {
	db         database.System
	logger     *slog.Logger
	pagination pagination.Config
	timeout    time.Duration
}

// New creates a reference data gateway backed by the given database system.
// Every query runs under its own timeout.
func New(db database.System, logger *slog.Logger, pagination pagination.Config, timeout time.Duration) System {
	return &gateway{
		db:         db,
		logger:     logger.With("system", "refdata"),
		pagination: pagination,
		timeout:    timeout,
	}
}

func (g *gateway) Handler() *Handler {
	return NewHandler(g, g.logger, g.pagination)
}

// queryContext bounds a single store query. A non-positive timeout leaves
// the caller's context untouched.
func (g *gateway) queryContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if g.timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, g.timeout)
}

// FindWarehouse matches a warehouse by exact name or code within a tenant.
// Duplicate matches within the tenant are rejected as ambiguous rather than
// resolved arbitrarily.
func (g *gateway) FindWarehouse(ctx context.Context, tenant, codeOrName string) (*Warehouse, error) {
	ctx, cancel := g.queryContext(ctx)
	defer cancel()

	return findUnique[Warehouse](ctx, g.db.Collection(CollectionWarehouses), codeOrNameFilter(tenant, codeOrName))
}

// FindCustomer matches a customer by exact name or code within a tenant,
// with the same ambiguity policy as FindWarehouse.
func (g *gateway) FindCustomer(ctx context.Context, tenant, codeOrName string) (*Customer, error) {
	ctx, cancel := g.queryContext(ctx)
	defer cancel()

	return findUnique[Customer](ctx, g.db.Collection(CollectionCustomers), codeOrNameFilter(tenant, codeOrName))
}

// FindProductVariant matches a variant by exact (tenant, customer, sku).
func (g *gateway) FindProductVariant(ctx context.Context, tenant string, customer primitive.ObjectID, sku string) (*ProductVariant, error) {
	ctx, cancel := g.queryContext(ctx)
	defer cancel()

	filter := bson.M{"customer": customer, "sku": sku}
	if tenant != "" {
		filter["tenant"] = tenant
	}

	var v ProductVariant
	err := g.db.Collection(CollectionVariants).FindOne(ctx, filter).Decode(&v)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find product variant: %w", err)
	}
	return &v, nil
}

// FindSkuBinMapping returns the bin mapping for a variant, or nil when the
// variant has no mapping. Absence is not an error.
func (g *gateway) FindSkuBinMapping(ctx context.Context, variant primitive.ObjectID) (*SkuBinMapping, error) {
	ctx, cancel := g.queryContext(ctx)
	defer cancel()

	var m SkuBinMapping
	err := g.db.Collection(CollectionSkuBinMappings).FindOne(ctx, bson.M{"product": variant}).Decode(&m)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("find sku bin mapping: %w", err)
	}
	return &m, nil
}

// FindValidFormFactor accepts the candidate when it case-insensitively
// matches the base unit of measure or any configured base/target unit
// across all variants for the (tenant, customer, sku).
func (g *gateway) FindValidFormFactor(ctx context.Context, tenant string, customer primitive.ObjectID, sku, candidate string) (string, error) {
	ctx, cancel := g.queryContext(ctx)
	defer cancel()

	filter := bson.M{"customer": customer, "sku": sku}
	if tenant != "" {
		filter["tenant"] = tenant
	}

	cursor, err := g.db.Collection(CollectionVariants).Find(ctx, filter)
	if err != nil {
		return "", fmt.Errorf("find variants for form factor: %w", err)
	}

	var variants []ProductVariant
	if err := cursor.All(ctx, &variants); err != nil {
		return "", fmt.Errorf("decode variants for form factor: %w", err)
	}

	for i := range variants {
		if variants[i].MatchesFormFactor(candidate) {
			return candidate, nil
		}
	}
	return "", ErrNotFound
}

func (g *gateway) ListWarehouses(ctx context.Context, tenant string, page pagination.PageRequest) (*pagination.PageResult[Warehouse], error) {
	ctx, cancel := g.queryContext(ctx)
	defer cancel()

	return listPage[Warehouse](ctx, g.db.Collection(CollectionWarehouses), tenant, page)
}

func (g *gateway) ListCustomers(ctx context.Context, tenant string, page pagination.PageRequest) (*pagination.PageResult[Customer], error) {
	ctx, cancel := g.queryContext(ctx)
	defer cancel()

	return listPage[Customer](ctx, g.db.Collection(CollectionCustomers), tenant, page)
}

func codeOrNameFilter(tenant, codeOrName string) bson.M {
	filter := bson.M{
		"$or": []bson.M{
			{"name": codeOrName},
			{"code": codeOrName},
		},
	}
	if tenant != "" {
		filter["tenant"] = tenant
	}
	return filter
}

// findUnique resolves a filter to exactly one document. Zero matches map to
// ErrNotFound; two or more map to ErrAmbiguous.
func findUnique[T any](ctx context.Context, coll *mongo.Collection, filter bson.M) (*T, error) {
	cursor, err := coll.Find(ctx, filter, options.Find().SetLimit(2))
	if err != nil {
		return nil, fmt.Errorf("find %s: %w", coll.Name(), err)
	}

	var results []T
	if err := cursor.All(ctx, &results); err != nil {
		return nil, fmt.Errorf("decode %s: %w", coll.Name(), err)
	}

	switch len(results) {
	case 0:
		return nil, ErrNotFound
	case 1:
		return &results[0], nil
	default:
		return nil, ErrAmbiguous
	}
}

func listPage[T any](ctx context.Context, coll *mongo.Collection, tenant string, page pagination.PageRequest) (*pagination.PageResult[T], error) {
	filter := bson.M{}
	if tenant != "" {
		filter["tenant"] = tenant
	}
	if page.Search != nil {
		pattern := primitive.Regex{Pattern: regexp.QuoteMeta(*page.Search), Options: "i"}
		filter["$or"] = []bson.M{
			{"name": pattern},
			{"code": pattern},
		}
	}

	total, err := coll.CountDocuments(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("count %s: %w", coll.Name(), err)
	}

	opts := options.Find().
		SetSort(sortDocument(page.Sort)).
		SetSkip(int64(page.Offset())).
		SetLimit(int64(page.PageSize))

	cursor, err := coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", coll.Name(), err)
	}

	var data []T
	if err := cursor.All(ctx, &data); err != nil {
		return nil, fmt.Errorf("decode %s: %w", coll.Name(), err)
	}

	result := pagination.NewPageResult(data, int(total), page.Page, page.PageSize)
	return &result, nil
}

func sortDocument(fields []pagination.SortField) bson.D {
	if len(fields) == 0 {
		return bson.D{{Key: "name", Value: 1}}
	}

	doc := make(bson.D, 0, len(fields))
	for _, f := range fields {
		order := 1
		if f.Desc {
			order = -1
		}
		doc = append(doc, bson.E{Key: f.Field, Value: order})
	}
	return doc
}
