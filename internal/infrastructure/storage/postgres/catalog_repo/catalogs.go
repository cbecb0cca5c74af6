package catalog_repo

import (
	"warelog/internal/domain/catalogs"
	"warelog/internal/infrastructure/storage/postgres"
)

// Table names.
const (
	TableProducts       = "products"
	TableCategories     = "categories"
	TableWarehouses     = "warehouses"
	TableWarehouseTypes = "warehouse_types"
	TableLocations      = "locations"
	TableSuppliers      = "suppliers"
	TableEmployees      = "employees"
)

// NewProductRepo creates the product repository.
func NewProductRepo(txm *postgres.TxManager) *BaseCatalogRepo[*catalogs.Product] {
	return NewBaseCatalogRepo(
		txm,
		TableProducts,
		postgres.ExtractDBColumns[catalogs.Product](),
		[]string{"product_code", "name"},
		func() *catalogs.Product { return &catalogs.Product{} },
	)
}

// NewCategoryRepo creates the category repository.
func NewCategoryRepo(txm *postgres.TxManager) *BaseCatalogRepo[*catalogs.Category] {
	return NewBaseCatalogRepo(
		txm,
		TableCategories,
		postgres.ExtractDBColumns[catalogs.Category](),
		[]string{"name"},
		func() *catalogs.Category { return &catalogs.Category{} },
	)
}

// NewWarehouseRepo creates the warehouse repository.
func NewWarehouseRepo(txm *postgres.TxManager) *BaseCatalogRepo[*catalogs.Warehouse] {
	return NewBaseCatalogRepo(
		txm,
		TableWarehouses,
		postgres.ExtractDBColumns[catalogs.Warehouse](),
		[]string{"name"},
		func() *catalogs.Warehouse { return &catalogs.Warehouse{} },
	)
}

// NewWarehouseTypeRepo creates the warehouse type repository.
func NewWarehouseTypeRepo(txm *postgres.TxManager) *BaseCatalogRepo[*catalogs.WarehouseType] {
	return NewBaseCatalogRepo(
		txm,
		TableWarehouseTypes,
		postgres.ExtractDBColumns[catalogs.WarehouseType](),
		[]string{"type_name"},
		func() *catalogs.WarehouseType { return &catalogs.WarehouseType{} },
	)
}

// NewLocationRepo creates the location repository.
func NewLocationRepo(txm *postgres.TxManager) *BaseCatalogRepo[*catalogs.Location] {
	return NewBaseCatalogRepo(
		txm,
		TableLocations,
		postgres.ExtractDBColumns[catalogs.Location](),
		[]string{"address", "city"},
		func() *catalogs.Location { return &catalogs.Location{} },
	)
}

// NewSupplierRepo creates the supplier repository.
func NewSupplierRepo(txm *postgres.TxManager) *BaseCatalogRepo[*catalogs.Supplier] {
	return NewBaseCatalogRepo(
		txm,
		TableSuppliers,
		postgres.ExtractDBColumns[catalogs.Supplier](),
		[]string{"supplier_name", "contact_person"},
		func() *catalogs.Supplier { return &catalogs.Supplier{} },
	)
}

// NewEmployeeRepo creates the employee repository.
func NewEmployeeRepo(txm *postgres.TxManager) *BaseCatalogRepo[*catalogs.Employee] {
	return NewBaseCatalogRepo(
		txm,
		TableEmployees,
		postgres.ExtractDBColumns[catalogs.Employee](),
		[]string{"first_name", "last_name"},
		func() *catalogs.Employee { return &catalogs.Employee{} },
	)
}
