package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/oksasatya/catalog-backoffice/pkg/adminclient"
)

// assetValue maps the form text back onto an upload field: the stored URL
// keeps it, a local path stages an upload and an empty value clears it.
func assetValue(cur adminclient.Asset, text string) adminclient.Asset {
	text = strings.TrimSpace(text)
	switch {
	case text == cur.URL:
		return adminclient.Asset{URL: cur.URL}
	case text == "":
		return adminclient.Asset{}
	}
	return adminclient.Asset{URL: cur.URL, Local: text}
}

func parseInt64(field, s string) (int64, error) {
	v, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer", field)
	}
	return v, nil
}

func intValidator(field string) func(string) error {
	return func(s string) error {
		_, err := parseInt64(field, s)
		return err
	}
}

type userEditor struct {
	name, address, phone, email, password, role, pict string
}

func newUserEditor(u adminclient.User) editor[adminclient.User] {
	// The server never returns the password, so the input starts blank
	// unless a retry carries the one typed before.
	return &userEditor{
		name: u.Name, address: u.Address, phone: u.Phone, email: u.Email,
		password: u.Password, role: u.Role, pict: u.Pict.URL,
	}
}

func (e *userEditor) Form() *huh.Form {
	return huh.NewForm(huh.NewGroup(
		huh.NewInput().Title("Name").Value(&e.name),
		huh.NewInput().Title("Address").Value(&e.address),
		huh.NewInput().Title("Phone").Value(&e.phone),
		huh.NewInput().Title("Email").Value(&e.email).Validate(required("email")),
		huh.NewInput().Title("Password").Description("Leave blank to keep the current password").
			EchoMode(huh.EchoModePassword).Value(&e.password),
		huh.NewSelect[string]().Title("Role").Options(
			huh.NewOption("member", "member"),
			huh.NewOption("admin", "admin"),
		).Value(&e.role),
		huh.NewInput().Title("Photo").Description("Stored URL, or a local image path to upload").Value(&e.pict),
	))
}

func (e *userEditor) Apply(u *adminclient.User) error {
	u.Name = e.name
	u.Address = e.address
	u.Phone = e.phone
	u.Email = strings.TrimSpace(e.email)
	u.Password = e.password
	u.Role = e.role
	u.Pict = assetValue(u.Pict, e.pict)
	return nil
}

type productEditor struct {
	name, price, description, size, stock, rating, category, pict string
}

func newProductEditor(p adminclient.Product) editor[adminclient.Product] {
	return &productEditor{
		name:        p.Name,
		price:       strconv.FormatInt(p.Price, 10),
		description: p.Description,
		size:        p.Size,
		stock:       strconv.FormatInt(p.Stock, 10),
		rating:      strconv.Itoa(p.Rating),
		category:    strconv.FormatInt(p.CategoryID, 10),
		pict:        p.Pict.URL,
	}
}

func (e *productEditor) Form() *huh.Form {
	return huh.NewForm(huh.NewGroup(
		huh.NewInput().Title("Name").Value(&e.name).Validate(required("name")),
		huh.NewInput().Title("Price").Value(&e.price).Validate(intValidator("price")),
		huh.NewText().Title("Description").Value(&e.description),
		huh.NewInput().Title("Size").Value(&e.size),
		huh.NewInput().Title("Stock").Value(&e.stock).Validate(intValidator("stock")),
		huh.NewSelect[string]().Title("Rating").Options(huh.NewOptions("0", "1", "2", "3", "4", "5")...).Value(&e.rating),
		huh.NewInput().Title("Category id").Value(&e.category).Validate(intValidator("category id")),
		huh.NewInput().Title("Picture").Description("Stored URL, or a local image path to upload").Value(&e.pict),
	))
}

func (e *productEditor) Apply(p *adminclient.Product) error {
	price, err := parseInt64("price", e.price)
	if err != nil {
		return err
	}
	stock, err := parseInt64("stock", e.stock)
	if err != nil {
		return err
	}
	rating, err := parseInt64("rating", e.rating)
	if err != nil {
		return err
	}
	category, err := parseInt64("category id", e.category)
	if err != nil {
		return err
	}
	p.Name = strings.TrimSpace(e.name)
	p.Price = price
	p.Description = e.description
	p.Size = e.size
	p.Stock = stock
	p.Rating = int(rating)
	p.CategoryID = category
	p.Pict = assetValue(p.Pict, e.pict)
	return nil
}

type categoryEditor struct{ name string }

func newCategoryEditor(c adminclient.Category) editor[adminclient.Category] {
	return &categoryEditor{name: c.Name}
}

func (e *categoryEditor) Form() *huh.Form {
	return huh.NewForm(huh.NewGroup(
		huh.NewInput().Title("Name").Value(&e.name).Validate(required("name")),
	))
}

func (e *categoryEditor) Apply(c *adminclient.Category) error {
	c.Name = strings.TrimSpace(e.name)
	return nil
}
