package service

import (
	"context"
	"sort"

	"github.com/dukerupert/vanir/internal/repository"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

// fakeStore is an in-memory implementation of Store. ExecTx runs the
// function directly with no rollback, so tests only assert state after
// operations that either fully succeed or fail before mutating.
type fakeStore struct {
	tokens       map[string]int64
	users        map[int64]repository.User
	contacts     map[int64]repository.Contact
	shops        map[int64]repository.Shop
	products     map[int64]string
	offers       map[int64]repository.ProductOffer
	buyerOrders  map[int64]repository.BuyerOrder
	sellerOrders map[int64]repository.SellerOrder
	items        map[int64]repository.OrderItem
	nextID       int64
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		tokens:       make(map[string]int64),
		users:        make(map[int64]repository.User),
		contacts:     make(map[int64]repository.Contact),
		shops:        make(map[int64]repository.Shop),
		products:     make(map[int64]string),
		offers:       make(map[int64]repository.ProductOffer),
		buyerOrders:  make(map[int64]repository.BuyerOrder),
		sellerOrders: make(map[int64]repository.SellerOrder),
		items:        make(map[int64]repository.OrderItem),
	}
}

func (f *fakeStore) id() int64 {
	f.nextID++
	return f.nextID
}

func (f *fakeStore) addUser(email, userType string) repository.User {
	u := repository.User{ID: f.id(), Email: email, Type: userType}
	f.users[u.ID] = u
	return u
}

func (f *fakeStore) addContact(userID int64, city, street, phone string) repository.Contact {
	c := repository.Contact{ID: f.id(), UserID: userID, City: city, Street: street, Phone: phone}
	f.contacts[c.ID] = c
	return c
}

func (f *fakeStore) addShop(ownerID int64, name, email string, isOpen bool, baseShipping int32) repository.Shop {
	s := repository.Shop{ID: f.id(), OwnerID: ownerID, Name: name, Email: email, IsOpen: isOpen, BaseShippingPrice: baseShipping}
	f.shops[s.ID] = s
	return s
}

func (f *fakeStore) addOffer(shopID int64, productName string, externalID int64, qty, price, priceRRC int32) repository.ProductOffer {
	productID := f.id()
	f.products[productID] = productName
	o := repository.ProductOffer{
		ID: f.id(), ShopID: shopID, ProductID: productID,
		ExternalID: externalID, Quantity: qty, Price: price, PriceRrc: priceRRC,
	}
	f.offers[o.ID] = o
	return o
}

func (f *fakeStore) offerDetail(o repository.ProductOffer) repository.OfferDetailRow {
	shop := f.shops[o.ShopID]
	return repository.OfferDetailRow{
		ID: o.ID, ShopID: o.ShopID, ProductID: o.ProductID, ExternalID: o.ExternalID,
		Quantity: o.Quantity, Price: o.Price, PriceRrc: o.PriceRrc,
		ProductName: f.products[o.ProductID], ShopName: shop.Name, ShopEmail: shop.Email,
		ShopIsOpen: shop.IsOpen, BaseShippingPrice: shop.BaseShippingPrice,
	}
}

func (f *fakeStore) sellerOrderDetail(so repository.SellerOrder) repository.SellerOrderDetailRow {
	shop := f.shops[so.ShopID]
	buyerOrder := f.buyerOrders[so.BuyerOrderID]
	buyer := f.users[buyerOrder.UserID]
	return repository.SellerOrderDetailRow{
		ID: so.ID, BuyerOrderID: so.BuyerOrderID, ShopID: so.ShopID, State: so.State,
		ContactID: so.ContactID, ShippingPrice: so.ShippingPrice,
		CreatedAt: so.CreatedAt, UpdatedAt: so.UpdatedAt,
		ShopName: shop.Name, ShopEmail: shop.Email,
		BuyerID: buyer.ID, BuyerEmail: buyer.Email, BuyerState: buyerOrder.State,
	}
}

// ExecTx implements Store.
func (f *fakeStore) ExecTx(_ context.Context, fn func(repository.Querier) error) error {
	return fn(f)
}

// Users and contacts

func (f *fakeStore) GetUserByToken(_ context.Context, key string) (repository.User, error) {
	id, ok := f.tokens[key]
	if !ok {
		return repository.User{}, pgx.ErrNoRows
	}
	return f.users[id], nil
}

func (f *fakeStore) GetUserByID(_ context.Context, id int64) (repository.User, error) {
	u, ok := f.users[id]
	if !ok {
		return repository.User{}, pgx.ErrNoRows
	}
	return u, nil
}

func (f *fakeStore) GetContact(_ context.Context, arg repository.GetContactParams) (repository.Contact, error) {
	c, ok := f.contacts[arg.ID]
	if !ok || c.UserID != arg.UserID || c.IsDeleted {
		return repository.Contact{}, pgx.ErrNoRows
	}
	return c, nil
}

func (f *fakeStore) GetContactByID(_ context.Context, id int64) (repository.Contact, error) {
	c, ok := f.contacts[id]
	if !ok {
		return repository.Contact{}, pgx.ErrNoRows
	}
	return c, nil
}

func (f *fakeStore) ListContacts(_ context.Context, userID int64) ([]repository.Contact, error) {
	var out []repository.Contact
	for _, c := range f.contacts {
		if c.UserID == userID && !c.IsDeleted {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeStore) CreateContact(_ context.Context, arg repository.CreateContactParams) (repository.Contact, error) {
	c := repository.Contact{
		ID: f.id(), UserID: arg.UserID, City: arg.City, Street: arg.Street,
		House: arg.House, Structure: arg.Structure, Building: arg.Building,
		Apartment: arg.Apartment, Phone: arg.Phone,
	}
	f.contacts[c.ID] = c
	return c, nil
}

func (f *fakeStore) UpdateContact(_ context.Context, arg repository.UpdateContactParams) (repository.Contact, error) {
	c, ok := f.contacts[arg.ID]
	if !ok || c.UserID != arg.UserID || c.IsDeleted {
		return repository.Contact{}, pgx.ErrNoRows
	}
	c.City, c.Street, c.House = arg.City, arg.Street, arg.House
	c.Structure, c.Building, c.Apartment, c.Phone = arg.Structure, arg.Building, arg.Apartment, arg.Phone
	f.contacts[c.ID] = c
	return c, nil
}

func (f *fakeStore) SoftDeleteContact(_ context.Context, arg repository.SoftDeleteContactParams) (int64, error) {
	c, ok := f.contacts[arg.ID]
	if !ok || c.UserID != arg.UserID || c.IsDeleted {
		return 0, nil
	}
	c.IsDeleted = true
	f.contacts[c.ID] = c
	return 1, nil
}

func (f *fakeStore) CountContactOrders(_ context.Context, contactID int64) (int64, error) {
	var count int64
	for _, so := range f.sellerOrders {
		if so.ContactID.Valid && so.ContactID.Int64 == contactID {
			count++
		}
	}
	return count, nil
}

// Shops

func (f *fakeStore) GetShopByOwnerID(_ context.Context, ownerID int64) (repository.Shop, error) {
	for _, s := range f.shops {
		if s.OwnerID == ownerID {
			return s, nil
		}
	}
	return repository.Shop{}, pgx.ErrNoRows
}

func (f *fakeStore) SetShopOpen(_ context.Context, arg repository.SetShopOpenParams) (repository.Shop, error) {
	s, ok := f.shops[arg.ID]
	if !ok {
		return repository.Shop{}, pgx.ErrNoRows
	}
	s.IsOpen = arg.IsOpen
	f.shops[s.ID] = s
	return s, nil
}

// Catalogue offers and inventory

func (f *fakeStore) GetOfferDetail(_ context.Context, id int64) (repository.OfferDetailRow, error) {
	o, ok := f.offers[id]
	if !ok {
		return repository.OfferDetailRow{}, pgx.ErrNoRows
	}
	return f.offerDetail(o), nil
}

func (f *fakeStore) ListOfferDetails(_ context.Context, ids []int64) ([]repository.OfferDetailRow, error) {
	var out []repository.OfferDetailRow
	for _, id := range ids {
		if o, ok := f.offers[id]; ok {
			out = append(out, f.offerDetail(o))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeStore) ListOpenOffers(_ context.Context) ([]repository.OfferDetailRow, error) {
	var out []repository.OfferDetailRow
	for _, o := range f.offers {
		if f.shops[o.ShopID].IsOpen && o.Quantity > 0 {
			out = append(out, f.offerDetail(o))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeStore) ListShopOffers(_ context.Context, shopID int64) ([]repository.OfferDetailRow, error) {
	var out []repository.OfferDetailRow
	for _, o := range f.offers {
		if o.ShopID == shopID {
			out = append(out, f.offerDetail(o))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeStore) GetOfferForUpdate(_ context.Context, id int64) (repository.ProductOffer, error) {
	o, ok := f.offers[id]
	if !ok {
		return repository.ProductOffer{}, pgx.ErrNoRows
	}
	return o, nil
}

func (f *fakeStore) UpdateOfferQuantity(_ context.Context, arg repository.UpdateOfferQuantityParams) error {
	o, ok := f.offers[arg.ID]
	if !ok {
		return pgx.ErrNoRows
	}
	o.Quantity = arg.Quantity
	f.offers[o.ID] = o
	return nil
}

// Buyer orders

func (f *fakeStore) GetBasketByUserID(_ context.Context, userID int64) (repository.BuyerOrder, error) {
	for _, bo := range f.buyerOrders {
		if bo.UserID == userID && bo.State == "basket" {
			return bo, nil
		}
	}
	return repository.BuyerOrder{}, pgx.ErrNoRows
}

func (f *fakeStore) CreateBasket(ctx context.Context, userID int64) (repository.BuyerOrder, error) {
	if bo, err := f.GetBasketByUserID(ctx, userID); err == nil {
		return bo, nil
	}
	bo := repository.BuyerOrder{ID: f.id(), UserID: userID, State: "basket"}
	f.buyerOrders[bo.ID] = bo
	return bo, nil
}

func (f *fakeStore) GetBuyerOrderForUser(_ context.Context, arg repository.GetBuyerOrderForUserParams) (repository.BuyerOrder, error) {
	bo, ok := f.buyerOrders[arg.ID]
	if !ok || bo.UserID != arg.UserID || bo.State == "basket" {
		return repository.BuyerOrder{}, pgx.ErrNoRows
	}
	return bo, nil
}

func (f *fakeStore) ListBuyerOrders(_ context.Context, userID int64) ([]repository.BuyerOrder, error) {
	var out []repository.BuyerOrder
	for _, bo := range f.buyerOrders {
		if bo.UserID == userID && bo.State != "basket" {
			out = append(out, bo)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (f *fakeStore) AcceptBuyerOrder(_ context.Context, arg repository.AcceptBuyerOrderParams) error {
	bo, ok := f.buyerOrders[arg.ID]
	if !ok {
		return pgx.ErrNoRows
	}
	bo.State = arg.State
	bo.CreatedAt = arg.CreatedAt
	f.buyerOrders[bo.ID] = bo
	return nil
}

func (f *fakeStore) SetBuyerOrderState(_ context.Context, arg repository.SetBuyerOrderStateParams) error {
	bo, ok := f.buyerOrders[arg.ID]
	if !ok {
		return pgx.ErrNoRows
	}
	bo.State = arg.State
	f.buyerOrders[bo.ID] = bo
	return nil
}

func (f *fakeStore) DeleteBuyerOrder(_ context.Context, id int64) error {
	delete(f.buyerOrders, id)
	return nil
}

// Seller orders

func (f *fakeStore) GetSellerOrderDetail(_ context.Context, id int64) (repository.SellerOrderDetailRow, error) {
	so, ok := f.sellerOrders[id]
	if !ok {
		return repository.SellerOrderDetailRow{}, pgx.ErrNoRows
	}
	return f.sellerOrderDetail(so), nil
}

func (f *fakeStore) GetSellerOrderForUpdate(_ context.Context, id int64) (repository.SellerOrder, error) {
	so, ok := f.sellerOrders[id]
	if !ok {
		return repository.SellerOrder{}, pgx.ErrNoRows
	}
	return so, nil
}

func (f *fakeStore) ListSellerOrders(_ context.Context, buyerOrderID int64) ([]repository.SellerOrderDetailRow, error) {
	var out []repository.SellerOrderDetailRow
	for _, so := range f.sellerOrders {
		if so.BuyerOrderID == buyerOrderID {
			out = append(out, f.sellerOrderDetail(so))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeStore) ListShopOrders(_ context.Context, shopID int64) ([]repository.SellerOrderDetailRow, error) {
	var out []repository.SellerOrderDetailRow
	for _, so := range f.sellerOrders {
		if so.ShopID == shopID && so.State != "basket" {
			out = append(out, f.sellerOrderDetail(so))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (f *fakeStore) GetBasketSellerOrder(_ context.Context, arg repository.GetBasketSellerOrderParams) (repository.SellerOrder, error) {
	for _, so := range f.sellerOrders {
		if so.BuyerOrderID == arg.BuyerOrderID && so.ShopID == arg.ShopID && so.State == "basket" {
			return so, nil
		}
	}
	return repository.SellerOrder{}, pgx.ErrNoRows
}

func (f *fakeStore) CreateSellerOrder(_ context.Context, arg repository.CreateSellerOrderParams) (repository.SellerOrder, error) {
	so := repository.SellerOrder{
		ID: f.id(), BuyerOrderID: arg.BuyerOrderID, ShopID: arg.ShopID,
		State: "basket", ShippingPrice: arg.ShippingPrice,
	}
	f.sellerOrders[so.ID] = so
	return so, nil
}

func (f *fakeStore) PlaceSellerOrder(_ context.Context, arg repository.PlaceSellerOrderParams) error {
	so, ok := f.sellerOrders[arg.ID]
	if !ok {
		return pgx.ErrNoRows
	}
	so.State = arg.State
	so.ContactID = pgtype.Int8{Int64: arg.ContactID, Valid: true}
	so.CreatedAt = arg.CreatedAt
	so.UpdatedAt = arg.CreatedAt
	f.sellerOrders[so.ID] = so
	return nil
}

func (f *fakeStore) SetSellerOrderState(_ context.Context, arg repository.SetSellerOrderStateParams) error {
	so, ok := f.sellerOrders[arg.ID]
	if !ok {
		return pgx.ErrNoRows
	}
	so.State = arg.State
	f.sellerOrders[so.ID] = so
	return nil
}

func (f *fakeStore) SetSellerOrderShippingPrice(_ context.Context, arg repository.SetSellerOrderShippingPriceParams) error {
	so, ok := f.sellerOrders[arg.ID]
	if !ok {
		return pgx.ErrNoRows
	}
	so.ShippingPrice = arg.ShippingPrice
	f.sellerOrders[so.ID] = so
	return nil
}

func (f *fakeStore) DeleteSellerOrders(_ context.Context, ids []int64) error {
	for _, id := range ids {
		delete(f.sellerOrders, id)
	}
	return nil
}

func (f *fakeStore) CountSellerOrders(_ context.Context, buyerOrderID int64) (int64, error) {
	var count int64
	for _, so := range f.sellerOrders {
		if so.BuyerOrderID == buyerOrderID {
			count++
		}
	}
	return count, nil
}

// Order items

func (f *fakeStore) ListOrderItems(_ context.Context, sellerOrderID int64) ([]repository.OrderItemDetailRow, error) {
	var out []repository.OrderItemDetailRow
	for _, item := range f.items {
		if item.SellerOrderID != sellerOrderID {
			continue
		}
		offer := f.offers[item.OfferID]
		out = append(out, repository.OrderItemDetailRow{
			ID: item.ID, SellerOrderID: item.SellerOrderID, OfferID: item.OfferID,
			Quantity: item.Quantity, PurchasePrice: item.PurchasePrice,
			PurchasePriceRrc: item.PurchasePriceRrc,
			OfferExternalID:  offer.ExternalID, OfferQuantity: offer.Quantity,
			ProductName: f.products[offer.ProductID],
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeStore) UpsertOrderItem(_ context.Context, arg repository.UpsertOrderItemParams) (repository.OrderItem, error) {
	for _, item := range f.items {
		if item.SellerOrderID == arg.SellerOrderID && item.OfferID == arg.OfferID {
			item.Quantity = arg.Quantity
			item.PurchasePrice = arg.PurchasePrice
			item.PurchasePriceRrc = arg.PurchasePriceRrc
			f.items[item.ID] = item
			return item, nil
		}
	}
	item := repository.OrderItem{
		ID: f.id(), SellerOrderID: arg.SellerOrderID, OfferID: arg.OfferID,
		Quantity: arg.Quantity, PurchasePrice: arg.PurchasePrice, PurchasePriceRrc: arg.PurchasePriceRrc,
	}
	f.items[item.ID] = item
	return item, nil
}

func (f *fakeStore) DeleteOrderItems(_ context.Context, ids []int64) error {
	for _, id := range ids {
		delete(f.items, id)
	}
	return nil
}

var _ Store = (*fakeStore)(nil)
