package handlers

import (
	"github.com/oksasatya/catalog-backoffice/internal/application"
	"github.com/oksasatya/catalog-backoffice/internal/domain/entity"
	"github.com/oksasatya/catalog-backoffice/pkg/optional"
)

// Request bodies. Every field is optional so that absent keys leave stored
// values untouched. Unknown keys, such as echoed ids and timestamps, are ignored.

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type userUpdateRequest struct {
	Name     optional.Field[string] `json:"name" binding:"omitempty,max=120"`
	Address  optional.Field[string] `json:"address" binding:"omitempty,max=255"`
	Phone    optional.Field[string] `json:"phone" binding:"omitempty,max=32"`
	Email    optional.Field[string] `json:"email" binding:"omitempty,email,max=255"`
	Password optional.Field[string] `json:"password" binding:"omitempty,max=72"`
	Role     optional.Field[string] `json:"role" binding:"omitempty,oneof=admin member"`
	Pict     optional.Field[string] `json:"pict"`
}

func (r userUpdateRequest) input(rejected map[string]string) application.UserInput {
	role := optional.Field[entity.Role]{Set: r.Role.Set, Null: r.Role.Null, Value: entity.Role(r.Role.Value)}
	return application.UserInput{
		Name:     r.Name,
		Address:  r.Address,
		Phone:    r.Phone,
		Email:    r.Email,
		Password: r.Password,
		Role:     role,
		Pict:     r.Pict,
		Rejected: rejected,
	}
}

type productRequest struct {
	Name        optional.Field[string] `json:"product_name" binding:"omitempty,max=200"`
	Price       optional.Field[int64]  `json:"price" binding:"omitempty,gte=0"`
	Description optional.Field[string] `json:"description"`
	Size        optional.Field[string] `json:"size" binding:"omitempty,max=50"`
	Stock       optional.Field[int64]  `json:"stock" binding:"omitempty,gte=0"`
	Pict        optional.Field[string] `json:"pict"`
	Rating      optional.Field[int]    `json:"rating" binding:"omitempty,gte=0,lte=5"`
	CategoryID  optional.Field[int64]  `json:"categories_id" binding:"omitempty,gt=0"`
}

func (r productRequest) patch(rejected map[string]string) entity.ProductPatch {
	return entity.ProductPatch{
		Name:        r.Name,
		Price:       r.Price,
		Description: r.Description,
		Size:        r.Size,
		Stock:       r.Stock,
		Pict:        r.Pict,
		Rating:      r.Rating,
		CategoryID:  r.CategoryID,
		Rejected:    rejected,
	}
}

type categoryRequest struct {
	Name optional.Field[string] `json:"name" binding:"omitempty,max=120"`
}

func (r categoryRequest) patch(rejected map[string]string) entity.CategoryPatch {
	return entity.CategoryPatch{Name: r.Name, Rejected: rejected}
}
