// Package seed loads the demo storefront used in development and demos.
package seed

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/google/uuid"

	"github.com/MikeMC777/bebidas-delivery/internal/category"
	"github.com/MikeMC777/bebidas-delivery/internal/establishment"
	"github.com/MikeMC777/bebidas-delivery/internal/product"
	"github.com/MikeMC777/bebidas-delivery/internal/user"
)

const DemoSlug = "taxi-beer"

type Establishments interface {
	Create(ctx context.Context, in establishment.SaveRequest) (*establishment.Establishment, error)
	BySlug(ctx context.Context, slug string) (*establishment.Establishment, error)
}

type StoreAdmins interface {
	CreateStoreAdmin(ctx context.Context, in user.CreateStoreAdminRequest) (*user.User, error)
}

type Seeder struct {
	Establishments Establishments
	Categories     category.Repository
	Products       product.Repository
	Users          StoreAdmins
}

type demoProduct struct {
	category    string
	name        string
	description string
	price       string
	image       string
	typ         product.Type
	featured    bool
}

var demoCategories = []string{"Cervejas", "Drinks", "Tira Gosto", "Barris de Chopp"}

var demoProducts = []demoProduct{
	{"Cervejas", "Cerveja Pilsen Long Neck", "Cerveja gelada 355ml", "8.90", "https://beverages2u.com/wp-content/uploads/2020/06/PENN-VARIETY-1.jpg", product.TypeSale, true},
	{"Cervejas", "Pack Cerveja Artesanal", "Pack com 6 cervejas artesanais variadas", "79.90", "https://labaskets.com/cdn/shop/files/BeerAYearGift_2000x.jpg", product.TypeSale, true},
	{"Cervejas", "Pack Latas Premium", "Pack 12 latas de cerveja premium", "89.90", "", product.TypeSale, false},
	{"Cervejas", "Chopp Pilsen 500ml", "Chopp gelado servido na caneca", "12.90", "", product.TypeSale, true},
	{"Drinks", "Caipirinha Tradicional", "Caipirinha de limão com cachaça artesanal", "18.90", "", product.TypeSale, true},
	{"Drinks", "Whisky 12 Anos", "Dose de whisky escocês 12 anos", "32.90", "", product.TypeSale, false},
	{"Tira Gosto", "Batata Frita", "Porção de batata frita crocante", "24.90", "", product.TypeSale, false},
	{"Tira Gosto", "Frango à Passarinho", "Porção de frango frito temperado", "34.90", "", product.TypeSale, true},
	{"Tira Gosto", "Calabresa Acebolada", "Porção de calabresa frita com cebola", "29.90", "", product.TypeSale, false},
	{"Barris de Chopp", "Barril de Chopp 50L", "Barril de chopp 50 litros com chopeira inclusa. Ideal para festas grandes.", "450.00", "", product.TypeRental, true},
	{"Barris de Chopp", "Barril de Chopp 30L", "Barril de chopp 30 litros com chopeira inclusa. Ideal para festas médias.", "320.00", "", product.TypeRental, true},
	{"Barris de Chopp", "Barril de Chopp 10L", "Barril de chopp 10 litros. Ideal para pequenas reuniões.", "180.00", "", product.TypeRental, false},
}

// Demo creates the taxi-beer store with its catalog and a store admin.
// It does nothing when the store already exists.
func (s *Seeder) Demo(ctx context.Context, adminEmail, adminPassword string) error {
	if _, err := s.Establishments.BySlug(ctx, DemoSlug); err == nil {
		log.Printf("[seed] %s already present", DemoSlug)
		return nil
	} else if !errors.Is(err, establishment.ErrNotFound) {
		return err
	}

	est, err := s.Establishments.Create(ctx, establishment.SaveRequest{
		Name:     "Taxi Beer",
		Slug:     DemoSlug,
		Phone:    "(11) 99999-9999",
		Whatsapp: "5511999999999",
		Address:  "Rua das Cervejas, 123 - São Paulo, SP",
	})
	if err != nil {
		return fmt.Errorf("seed establishment: %w", err)
	}

	categories := make(map[string]string, len(demoCategories))
	for i, name := range demoCategories {
		c := &category.Category{ID: uuid.NewString(), EstablishmentID: est.ID, Name: name, Order: i + 1}
		if err := s.Categories.Create(ctx, c, false); err != nil {
			return fmt.Errorf("seed category %s: %w", name, err)
		}
		categories[name] = c.ID
	}

	for _, d := range demoProducts {
		p := &product.Product{
			ID:              uuid.NewString(),
			EstablishmentID: est.ID,
			CategoryID:      categories[d.category],
			Name:            d.name,
			Description:     d.description,
			Price:           d.price,
			Image:           d.image,
			Type:            d.typ,
			Featured:        d.featured,
			Active:          true,
		}
		if err := s.Products.Create(ctx, p); err != nil {
			return fmt.Errorf("seed product %s: %w", d.name, err)
		}
	}

	if adminEmail != "" && adminPassword != "" && s.Users != nil {
		if _, err := s.Users.CreateStoreAdmin(ctx, user.CreateStoreAdminRequest{
			Email:           adminEmail,
			Password:        adminPassword,
			Name:            "John Doe",
			EstablishmentID: est.ID,
		}); err != nil && !errors.Is(err, user.ErrAlreadyExist) {
			return fmt.Errorf("seed store admin: %w", err)
		}
	}
	log.Printf("[seed] %s created with %d categories and %d products", DemoSlug, len(demoCategories), len(demoProducts))
	return nil
}
