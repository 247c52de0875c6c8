package tests

import (
	"context"
	"strings"

	"github.com/MalditoKM/Asistent-Restaurant/internal/authz"
	"github.com/MalditoKM/Asistent-Restaurant/internal/model"
	"github.com/MalditoKM/Asistent-Restaurant/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// In-memory stand-ins for the gorm repositories. The services run their
// transaction closures with tx == nil in this mode, so every Tx method must
// tolerate a nil handle.

// ── users ─────────────────────────────────────────────────────────────────────

type stubUserRepo struct {
	users map[uuid.UUID]*model.User
	// createErr, when set, fails the next create once, simulating a
	// storage-level error such as a unique-index violation.
	createErr error
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[uuid.UUID]*model.User)}
}

func (r *stubUserRepo) Create(_ context.Context, u *model.User) error {
	return r.CreateTx(nil, u)
}

func (r *stubUserRepo) CreateTx(_ *gorm.DB, u *model.User) error {
	if r.createErr != nil {
		err := r.createErr
		r.createErr = nil
		return err
	}
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	r.users[u.ID] = u
	return nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id uuid.UUID) (*model.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return u, nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range r.users {
		if strings.EqualFold(u.Email, email) {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubUserRepo) List(_ context.Context, scope authz.Scope) ([]model.User, error) {
	var out []model.User
	for _, u := range r.users {
		if scope.Contains(u.RestaurantID) {
			out = append(out, *u)
		}
	}
	return out, nil
}

func (r *stubUserRepo) UpdateTx(_ *gorm.DB, u *model.User) error {
	r.users[u.ID] = u
	return nil
}

func (r *stubUserRepo) DeleteTx(_ *gorm.DB, id uuid.UUID) error {
	delete(r.users, id)
	return nil
}

func (r *stubUserRepo) CountSuperadminsTx(_ *gorm.DB) (int64, error) {
	var n int64
	for _, u := range r.users {
		if u.Role == model.RoleSuperadmin {
			n++
		}
	}
	return n, nil
}

func (r *stubUserRepo) CountByRestaurantTx(_ *gorm.DB, restaurantID uuid.UUID) (int64, error) {
	var n int64
	for _, u := range r.users {
		if u.RestaurantID == restaurantID {
			n++
		}
	}
	return n, nil
}

func (r *stubUserRepo) DB() *gorm.DB { return nil }

var _ repository.UserRepository = (*stubUserRepo)(nil)

// ── restaurants ───────────────────────────────────────────────────────────────

// stubRestaurantRepo mirrors the ON DELETE CASCADE on users so the directory
// tests observe the same aftermath as the real schema.
type stubRestaurantRepo struct {
	restaurants map[uuid.UUID]*model.Restaurant
	users       *stubUserRepo
}

func newStubRestaurantRepo(users *stubUserRepo) *stubRestaurantRepo {
	return &stubRestaurantRepo{restaurants: make(map[uuid.UUID]*model.Restaurant), users: users}
}

func (r *stubRestaurantRepo) withUsers(rest *model.Restaurant) *model.Restaurant {
	cp := *rest
	cp.Users = nil
	for _, u := range r.users.users {
		if u.RestaurantID == rest.ID {
			cp.Users = append(cp.Users, *u)
		}
	}
	return &cp
}

func (r *stubRestaurantRepo) ListAllWithUsers(_ context.Context) ([]model.Restaurant, error) {
	var out []model.Restaurant
	for _, rest := range r.restaurants {
		out = append(out, *r.withUsers(rest))
	}
	return out, nil
}

func (r *stubRestaurantRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Restaurant, error) {
	rest, ok := r.restaurants[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return r.withUsers(rest), nil
}

func (r *stubRestaurantRepo) CountTx(_ *gorm.DB) (int64, error) {
	return int64(len(r.restaurants)), nil
}

func (r *stubRestaurantRepo) CreateTx(_ *gorm.DB, rest *model.Restaurant) error {
	if rest.ID == uuid.Nil {
		rest.ID = uuid.New()
	}
	r.restaurants[rest.ID] = rest
	return nil
}

func (r *stubRestaurantRepo) UpdateTx(_ *gorm.DB, rest *model.Restaurant) error {
	r.restaurants[rest.ID] = rest
	return nil
}

func (r *stubRestaurantRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.restaurants, id)
	for uid, u := range r.users.users {
		if u.RestaurantID == id {
			delete(r.users.users, uid)
		}
	}
	return nil
}

func (r *stubRestaurantRepo) DB() *gorm.DB { return nil }

var _ repository.RestaurantRepository = (*stubRestaurantRepo)(nil)

// ── sales ─────────────────────────────────────────────────────────────────────

type stubSaleRepo struct {
	sales map[uuid.UUID]*model.Sale
}

func newStubSaleRepo() *stubSaleRepo {
	return &stubSaleRepo{sales: make(map[uuid.UUID]*model.Sale)}
}

func (r *stubSaleRepo) CreateTx(_ *gorm.DB, s *model.Sale) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	r.sales[s.ID] = s
	return nil
}

func (r *stubSaleRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Sale, error) {
	s, ok := r.sales[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return s, nil
}

func (r *stubSaleRepo) List(_ context.Context, scope authz.Scope) ([]model.Sale, error) {
	var out []model.Sale
	for _, s := range r.sales {
		if scope.Contains(s.RestaurantID) {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (r *stubSaleRepo) UpdateStatus(_ context.Context, id uuid.UUID, status string) error {
	s, ok := r.sales[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	s.Status = status
	return nil
}

func (r *stubSaleRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.sales, id)
	return nil
}

func (r *stubSaleRepo) BulkDelete(_ context.Context, scope authz.Scope, ids []uuid.UUID) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	var n int64
	for _, id := range ids {
		if s, ok := r.sales[id]; ok && scope.Contains(s.RestaurantID) {
			delete(r.sales, id)
			n++
		}
	}
	return n, nil
}

func (r *stubSaleRepo) DB() *gorm.DB { return nil }

var _ repository.SaleRepository = (*stubSaleRepo)(nil)

// ── products ──────────────────────────────────────────────────────────────────

type stubProductRepo struct {
	products map[uuid.UUID]*model.Product
}

func newStubProductRepo() *stubProductRepo {
	return &stubProductRepo{products: make(map[uuid.UUID]*model.Product)}
}

func (r *stubProductRepo) Create(_ context.Context, p *model.Product) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	r.products[p.ID] = p
	return nil
}

func (r *stubProductRepo) List(_ context.Context, scope authz.Scope) ([]model.Product, error) {
	var out []model.Product
	for _, p := range r.products {
		if scope.Contains(p.RestaurantID) {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *stubProductRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return p, nil
}

func (r *stubProductRepo) Update(_ context.Context, p *model.Product) error {
	r.products[p.ID] = p
	return nil
}

func (r *stubProductRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.products, id)
	return nil
}

var _ repository.ProductRepository = (*stubProductRepo)(nil)

// ── categories ────────────────────────────────────────────────────────────────

type stubCategoryRepo struct {
	categories map[uuid.UUID]*model.Category
}

func newStubCategoryRepo() *stubCategoryRepo {
	return &stubCategoryRepo{categories: make(map[uuid.UUID]*model.Category)}
}

func (r *stubCategoryRepo) Create(_ context.Context, c *model.Category) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	r.categories[c.ID] = c
	return nil
}

func (r *stubCategoryRepo) List(_ context.Context, scope authz.Scope) ([]model.Category, error) {
	var out []model.Category
	for _, c := range r.categories {
		if scope.Contains(c.RestaurantID) {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (r *stubCategoryRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Category, error) {
	c, ok := r.categories[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return c, nil
}

func (r *stubCategoryRepo) FindByName(_ context.Context, restaurantID uuid.UUID, name string) (*model.Category, error) {
	for _, c := range r.categories {
		if c.RestaurantID == restaurantID && strings.EqualFold(c.Name, name) {
			return c, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubCategoryRepo) Update(_ context.Context, c *model.Category) error {
	r.categories[c.ID] = c
	return nil
}

func (r *stubCategoryRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.categories, id)
	return nil
}

var _ repository.CategoryRepository = (*stubCategoryRepo)(nil)

// ── purchases ─────────────────────────────────────────────────────────────────

type stubPurchaseRepo struct {
	purchases map[uuid.UUID]*model.Purchase
}

func newStubPurchaseRepo() *stubPurchaseRepo {
	return &stubPurchaseRepo{purchases: make(map[uuid.UUID]*model.Purchase)}
}

func (r *stubPurchaseRepo) Create(_ context.Context, p *model.Purchase) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	r.purchases[p.ID] = p
	return nil
}

func (r *stubPurchaseRepo) List(_ context.Context, scope authz.Scope) ([]model.Purchase, error) {
	var out []model.Purchase
	for _, p := range r.purchases {
		if scope.Contains(p.RestaurantID) {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *stubPurchaseRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Purchase, error) {
	p, ok := r.purchases[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return p, nil
}

func (r *stubPurchaseRepo) Update(_ context.Context, p *model.Purchase) error {
	r.purchases[p.ID] = p
	return nil
}

func (r *stubPurchaseRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.purchases, id)
	return nil
}

var _ repository.PurchaseRepository = (*stubPurchaseRepo)(nil)

// ── shared helpers ────────────────────────────────────────────────────────────

func seedUser(repo *stubUserRepo, role model.Role, restaurantID uuid.UUID, email string) *model.User {
	u := &model.User{
		ID:           uuid.New(),
		Name:         "User " + email,
		Email:        email,
		PasswordHash: "x",
		Role:         role,
		RestaurantID: restaurantID,
	}
	repo.users[u.ID] = u
	return u
}

func actorFor(u *model.User) authz.Actor {
	return authz.Actor{ID: u.ID, Role: u.Role, RestaurantID: u.RestaurantID}
}

func scopeAll(actor authz.Actor) authz.Scope {
	return authz.ResolveScope(actor, authz.RequestedScope{AllTenants: true})
}

func ownScope(actor authz.Actor) authz.Scope {
	return authz.ResolveScope(actor, authz.RequestedScope{})
}
