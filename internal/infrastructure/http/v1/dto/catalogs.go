package dto

import (
	"time"

	"warelog/internal/core/types"
)

// --- Products ---

type CreateProductRequest struct {
	ProductCode    string          `json:"productCode" binding:"required"`
	Name           string          `json:"name" binding:"required"`
	CategoryID     *int64          `json:"categoryId"`
	Description    *string         `json:"description"`
	UnitOfMeasure  string          `json:"unitOfMeasure" binding:"required"`
	MinQuantity    *types.Quantity `json:"minQuantity"`
	UnitWeight     *types.Quantity `json:"unitWeight"`
	StorageTempMin *types.Quantity `json:"storageTempMin"`
	StorageTempMax *types.Quantity `json:"storageTempMax"`
	IsActive       *bool           `json:"isActive"`
}

type UpdateProductRequest struct {
	ProductCode    *string         `json:"productCode"`
	Name           *string         `json:"name"`
	CategoryID     *int64          `json:"categoryId"`
	Description    *string         `json:"description"`
	UnitOfMeasure  *string         `json:"unitOfMeasure"`
	MinQuantity    *types.Quantity `json:"minQuantity"`
	UnitWeight     *types.Quantity `json:"unitWeight"`
	StorageTempMin *types.Quantity `json:"storageTempMin"`
	StorageTempMax *types.Quantity `json:"storageTempMax"`
	IsActive       *bool           `json:"isActive"`
}

// --- Categories ---

type CreateCategoryRequest struct {
	Name             string  `json:"name" binding:"required"`
	Description      *string `json:"description"`
	ParentCategoryID *int64  `json:"parentCategoryId"`
	HierarchyLevel   int     `json:"hierarchyLevel" binding:"required,min=1"`
	CategoryType     *string `json:"categoryType"`
}

type UpdateCategoryRequest struct {
	Name             *string `json:"name"`
	Description      *string `json:"description"`
	ParentCategoryID *int64  `json:"parentCategoryId"`
	HierarchyLevel   *int    `json:"hierarchyLevel"`
	CategoryType     *string `json:"categoryType"`
}

// --- Warehouses ---

type CreateWarehouseRequest struct {
	Name            string `json:"name" binding:"required"`
	LocationID      *int64 `json:"locationId"`
	WarehouseTypeID *int64 `json:"warehouseTypeId"`
	IsActive        *bool  `json:"isActive"`
}

type UpdateWarehouseRequest struct {
	Name            *string `json:"name"`
	LocationID      *int64  `json:"locationId"`
	WarehouseTypeID *int64  `json:"warehouseTypeId"`
	IsActive        *bool   `json:"isActive"`
}

// --- Warehouse types ---

type CreateWarehouseTypeRequest struct {
	TypeName            string          `json:"typeName" binding:"required"`
	Description         *string         `json:"description"`
	RequiresTempControl bool            `json:"requiresTempControl"`
	MinTemperatureC     *types.Quantity `json:"minTemperatureC"`
	MaxTemperatureC     *types.Quantity `json:"maxTemperatureC"`
}

type UpdateWarehouseTypeRequest struct {
	TypeName            *string         `json:"typeName"`
	Description         *string         `json:"description"`
	RequiresTempControl *bool           `json:"requiresTempControl"`
	MinTemperatureC     *types.Quantity `json:"minTemperatureC"`
	MaxTemperatureC     *types.Quantity `json:"maxTemperatureC"`
}

// --- Locations ---

type CreateLocationRequest struct {
	Address string  `json:"address" binding:"required"`
	City    string  `json:"city" binding:"required"`
	State   *string `json:"state"`
	ZipCode *string `json:"zipCode"`
	Note    *string `json:"note"`
}

type UpdateLocationRequest struct {
	Address *string `json:"address"`
	City    *string `json:"city"`
	State   *string `json:"state"`
	ZipCode *string `json:"zipCode"`
	Note    *string `json:"note"`
}

// --- Suppliers ---

type CreateSupplierRequest struct {
	SupplierName  string  `json:"supplierName" binding:"required"`
	LocationID    *int64  `json:"locationId"`
	ContactPerson *string `json:"contactPerson"`
	Phone         *string `json:"phone"`
	Email         *string `json:"email"`
	JIB           *string `json:"jib"`
	PDVNumber     *string `json:"pdvNumber"`
	IsActive      *bool   `json:"isActive"`
	Note          *string `json:"note"`
}

type UpdateSupplierRequest struct {
	SupplierName  *string `json:"supplierName"`
	LocationID    *int64  `json:"locationId"`
	ContactPerson *string `json:"contactPerson"`
	Phone         *string `json:"phone"`
	Email         *string `json:"email"`
	JIB           *string `json:"jib"`
	PDVNumber     *string `json:"pdvNumber"`
	IsActive      *bool   `json:"isActive"`
	Note          *string `json:"note"`
}

// --- Employees ---

type CreateEmployeeRequest struct {
	UserID         *int64     `json:"userId"`
	FirstName      string     `json:"firstName" binding:"required"`
	LastName       string     `json:"lastName" binding:"required"`
	Position       *string    `json:"position"`
	EmploymentDate *time.Time `json:"employmentDate"`
	ContactPhone   *string    `json:"contactPhone"`
	IsActive       *bool      `json:"isActive"`
}

type UpdateEmployeeRequest struct {
	UserID         *int64     `json:"userId"`
	FirstName      *string    `json:"firstName"`
	LastName       *string    `json:"lastName"`
	Position       *string    `json:"position"`
	EmploymentDate *time.Time `json:"employmentDate"`
	ContactPhone   *string    `json:"contactPhone"`
	IsActive       *bool      `json:"isActive"`
}

// --- Batches ---

type CreateBatchRequest struct {
	ProductID      int64           `json:"productId" binding:"required"`
	SerialNumber   string          `json:"serialNumber" binding:"required"`
	LotNumber      string          `json:"lotNumber" binding:"required"`
	ProductionDate *time.Time      `json:"productionDate"`
	ExpirationDate *time.Time      `json:"expirationDate"`
	PurchasePrice  *types.Money    `json:"purchasePrice"`
	SalePrice      *types.Money    `json:"salePrice"`
	Quantity       *types.Quantity `json:"quantity"`
	BatchStatus    string          `json:"batchStatus"`
	Note           *string         `json:"note"`
}

type UpdateBatchRequest struct {
	SerialNumber   *string      `json:"serialNumber"`
	LotNumber      *string      `json:"lotNumber"`
	ProductionDate *time.Time   `json:"productionDate"`
	ExpirationDate *time.Time   `json:"expirationDate"`
	PurchasePrice  *types.Money `json:"purchasePrice"`
	SalePrice      *types.Money `json:"salePrice"`
	BatchStatus    *string      `json:"batchStatus"`
	Note           *string      `json:"note"`
}
