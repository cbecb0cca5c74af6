package handlers

import (
	"time"

	"warelog/internal/core/types"
	"warelog/internal/domain"
	"warelog/internal/domain/batch"
	"warelog/internal/domain/catalogs"
	"warelog/internal/infrastructure/http/v1/dto"
)

// Concrete catalog handler types. Each constructor wires the generic handler
// with the entity's DTO mappers.

type ProductHandler = CatalogHandler[*catalogs.Product, dto.CreateProductRequest, dto.UpdateProductRequest]

func NewProductHandler(base *BaseHandler, service *domain.CatalogService[*catalogs.Product]) *ProductHandler {
	return NewCatalogHandler(base, CatalogHandlerConfig[*catalogs.Product, dto.CreateProductRequest, dto.UpdateProductRequest]{
		Service: service,
		MapCreateDTO: func(req dto.CreateProductRequest) *catalogs.Product {
			return &catalogs.Product{
				ProductCode:    req.ProductCode,
				Name:           req.Name,
				CategoryID:     req.CategoryID,
				Description:    req.Description,
				UnitOfMeasure:  req.UnitOfMeasure,
				MinQuantity:    req.MinQuantity,
				UnitWeight:     req.UnitWeight,
				StorageTempMin: req.StorageTempMin,
				StorageTempMax: req.StorageTempMax,
				IsActive:       boolOrDefault(req.IsActive, true),
			}
		},
		MapUpdateDTO: func(req dto.UpdateProductRequest, p *catalogs.Product) *catalogs.Product {
			setString(&p.ProductCode, req.ProductCode)
			setString(&p.Name, req.Name)
			setPtr(&p.CategoryID, req.CategoryID)
			setPtr(&p.Description, req.Description)
			setString(&p.UnitOfMeasure, req.UnitOfMeasure)
			setPtr(&p.MinQuantity, req.MinQuantity)
			setPtr(&p.UnitWeight, req.UnitWeight)
			setPtr(&p.StorageTempMin, req.StorageTempMin)
			setPtr(&p.StorageTempMax, req.StorageTempMax)
			setBool(&p.IsActive, req.IsActive)
			return p
		},
	})
}

type CategoryHandler = CatalogHandler[*catalogs.Category, dto.CreateCategoryRequest, dto.UpdateCategoryRequest]

func NewCategoryHandler(base *BaseHandler, service *domain.CatalogService[*catalogs.Category]) *CategoryHandler {
	return NewCatalogHandler(base, CatalogHandlerConfig[*catalogs.Category, dto.CreateCategoryRequest, dto.UpdateCategoryRequest]{
		Service: service,
		MapCreateDTO: func(req dto.CreateCategoryRequest) *catalogs.Category {
			return &catalogs.Category{
				Name:             req.Name,
				Description:      req.Description,
				ParentCategoryID: req.ParentCategoryID,
				HierarchyLevel:   req.HierarchyLevel,
				CategoryType:     req.CategoryType,
			}
		},
		MapUpdateDTO: func(req dto.UpdateCategoryRequest, cat *catalogs.Category) *catalogs.Category {
			setString(&cat.Name, req.Name)
			setPtr(&cat.Description, req.Description)
			setPtr(&cat.ParentCategoryID, req.ParentCategoryID)
			if req.HierarchyLevel != nil {
				cat.HierarchyLevel = *req.HierarchyLevel
			}
			setPtr(&cat.CategoryType, req.CategoryType)
			return cat
		},
	})
}

type WarehouseHandler = CatalogHandler[*catalogs.Warehouse, dto.CreateWarehouseRequest, dto.UpdateWarehouseRequest]

func NewWarehouseHandler(base *BaseHandler, service *domain.CatalogService[*catalogs.Warehouse]) *WarehouseHandler {
	return NewCatalogHandler(base, CatalogHandlerConfig[*catalogs.Warehouse, dto.CreateWarehouseRequest, dto.UpdateWarehouseRequest]{
		Service: service,
		MapCreateDTO: func(req dto.CreateWarehouseRequest) *catalogs.Warehouse {
			return &catalogs.Warehouse{
				Name:            req.Name,
				LocationID:      req.LocationID,
				WarehouseTypeID: req.WarehouseTypeID,
				IsActive:        boolOrDefault(req.IsActive, true),
			}
		},
		MapUpdateDTO: func(req dto.UpdateWarehouseRequest, w *catalogs.Warehouse) *catalogs.Warehouse {
			setString(&w.Name, req.Name)
			setPtr(&w.LocationID, req.LocationID)
			setPtr(&w.WarehouseTypeID, req.WarehouseTypeID)
			setBool(&w.IsActive, req.IsActive)
			return w
		},
	})
}

type WarehouseTypeHandler = CatalogHandler[*catalogs.WarehouseType, dto.CreateWarehouseTypeRequest, dto.UpdateWarehouseTypeRequest]

func NewWarehouseTypeHandler(base *BaseHandler, service *domain.CatalogService[*catalogs.WarehouseType]) *WarehouseTypeHandler {
	return NewCatalogHandler(base, CatalogHandlerConfig[*catalogs.WarehouseType, dto.CreateWarehouseTypeRequest, dto.UpdateWarehouseTypeRequest]{
		Service: service,
		MapCreateDTO: func(req dto.CreateWarehouseTypeRequest) *catalogs.WarehouseType {
			return &catalogs.WarehouseType{
				TypeName:            req.TypeName,
				Description:         req.Description,
				RequiresTempControl: req.RequiresTempControl,
				MinTemperatureC:     req.MinTemperatureC,
				MaxTemperatureC:     req.MaxTemperatureC,
			}
		},
		MapUpdateDTO: func(req dto.UpdateWarehouseTypeRequest, wt *catalogs.WarehouseType) *catalogs.WarehouseType {
			setString(&wt.TypeName, req.TypeName)
			setPtr(&wt.Description, req.Description)
			setBool(&wt.RequiresTempControl, req.RequiresTempControl)
			setPtr(&wt.MinTemperatureC, req.MinTemperatureC)
			setPtr(&wt.MaxTemperatureC, req.MaxTemperatureC)
			return wt
		},
	})
}

type LocationHandler = CatalogHandler[*catalogs.Location, dto.CreateLocationRequest, dto.UpdateLocationRequest]

func NewLocationHandler(base *BaseHandler, service *domain.CatalogService[*catalogs.Location]) *LocationHandler {
	return NewCatalogHandler(base, CatalogHandlerConfig[*catalogs.Location, dto.CreateLocationRequest, dto.UpdateLocationRequest]{
		Service: service,
		MapCreateDTO: func(req dto.CreateLocationRequest) *catalogs.Location {
			return &catalogs.Location{
				Address: req.Address,
				City:    req.City,
				State:   req.State,
				ZipCode: req.ZipCode,
				Note:    req.Note,
			}
		},
		MapUpdateDTO: func(req dto.UpdateLocationRequest, l *catalogs.Location) *catalogs.Location {
			setString(&l.Address, req.Address)
			setString(&l.City, req.City)
			setPtr(&l.State, req.State)
			setPtr(&l.ZipCode, req.ZipCode)
			setPtr(&l.Note, req.Note)
			return l
		},
	})
}

type SupplierHandler = CatalogHandler[*catalogs.Supplier, dto.CreateSupplierRequest, dto.UpdateSupplierRequest]

func NewSupplierHandler(base *BaseHandler, service *domain.CatalogService[*catalogs.Supplier]) *SupplierHandler {
	return NewCatalogHandler(base, CatalogHandlerConfig[*catalogs.Supplier, dto.CreateSupplierRequest, dto.UpdateSupplierRequest]{
		Service: service,
		MapCreateDTO: func(req dto.CreateSupplierRequest) *catalogs.Supplier {
			return &catalogs.Supplier{
				SupplierName:  req.SupplierName,
				LocationID:    req.LocationID,
				ContactPerson: req.ContactPerson,
				Phone:         req.Phone,
				Email:         req.Email,
				JIB:           req.JIB,
				PDVNumber:     req.PDVNumber,
				IsActive:      boolOrDefault(req.IsActive, true),
				Note:          req.Note,
			}
		},
		MapUpdateDTO: func(req dto.UpdateSupplierRequest, s *catalogs.Supplier) *catalogs.Supplier {
			setString(&s.SupplierName, req.SupplierName)
			setPtr(&s.LocationID, req.LocationID)
			setPtr(&s.ContactPerson, req.ContactPerson)
			setPtr(&s.Phone, req.Phone)
			setPtr(&s.Email, req.Email)
			setPtr(&s.JIB, req.JIB)
			setPtr(&s.PDVNumber, req.PDVNumber)
			setBool(&s.IsActive, req.IsActive)
			setPtr(&s.Note, req.Note)
			return s
		},
	})
}

type EmployeeHandler = CatalogHandler[*catalogs.Employee, dto.CreateEmployeeRequest, dto.UpdateEmployeeRequest]

func NewEmployeeHandler(base *BaseHandler, service *domain.CatalogService[*catalogs.Employee]) *EmployeeHandler {
	return NewCatalogHandler(base, CatalogHandlerConfig[*catalogs.Employee, dto.CreateEmployeeRequest, dto.UpdateEmployeeRequest]{
		Service: service,
		MapCreateDTO: func(req dto.CreateEmployeeRequest) *catalogs.Employee {
			e := &catalogs.Employee{
				UserID:       req.UserID,
				FirstName:    req.FirstName,
				LastName:     req.LastName,
				Position:     req.Position,
				ContactPhone: req.ContactPhone,
				IsActive:     boolOrDefault(req.IsActive, true),
			}
			if req.EmploymentDate != nil {
				e.EmploymentDate = *req.EmploymentDate
			} else {
				e.EmploymentDate = time.Now().UTC()
			}
			return e
		},
		MapUpdateDTO: func(req dto.UpdateEmployeeRequest, e *catalogs.Employee) *catalogs.Employee {
			setPtr(&e.UserID, req.UserID)
			setString(&e.FirstName, req.FirstName)
			setString(&e.LastName, req.LastName)
			setPtr(&e.Position, req.Position)
			if req.EmploymentDate != nil {
				e.EmploymentDate = *req.EmploymentDate
			}
			setPtr(&e.ContactPhone, req.ContactPhone)
			setBool(&e.IsActive, req.IsActive)
			return e
		},
	})
}

type BatchHandler = CatalogHandler[*batch.Batch, dto.CreateBatchRequest, dto.UpdateBatchRequest]

// NewBatchHandler wires batch CRUD. Quantity is set on creation only; after
// that it is maintained exclusively by movement processing.
func NewBatchHandler(base *BaseHandler, service *domain.CatalogService[*batch.Batch]) *BatchHandler {
	return NewCatalogHandler(base, CatalogHandlerConfig[*batch.Batch, dto.CreateBatchRequest, dto.UpdateBatchRequest]{
		Service: service,
		MapCreateDTO: func(req dto.CreateBatchRequest) *batch.Batch {
			b := &batch.Batch{
				ProductID:      req.ProductID,
				SerialNumber:   req.SerialNumber,
				LotNumber:      req.LotNumber,
				ProductionDate: req.ProductionDate,
				ExpirationDate: req.ExpirationDate,
				PurchasePrice:  req.PurchasePrice,
				SalePrice:      req.SalePrice,
				Quantity:       types.Zero(),
				BatchStatus:    req.BatchStatus,
			}
			if req.Quantity != nil {
				b.Quantity = *req.Quantity
			}
			if b.BatchStatus == "" {
				b.BatchStatus = batch.StatusActive
			}
			b.Note = req.Note
			return b
		},
		MapUpdateDTO: func(req dto.UpdateBatchRequest, b *batch.Batch) *batch.Batch {
			setString(&b.SerialNumber, req.SerialNumber)
			setString(&b.LotNumber, req.LotNumber)
			setPtr(&b.ProductionDate, req.ProductionDate)
			setPtr(&b.ExpirationDate, req.ExpirationDate)
			setPtr(&b.PurchasePrice, req.PurchasePrice)
			setPtr(&b.SalePrice, req.SalePrice)
			setString(&b.BatchStatus, req.BatchStatus)
			setPtr(&b.Note, req.Note)
			return b
		},
	})
}

// --- merge helpers ---

func setString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}

func setBool(dst *bool, src *bool) {
	if src != nil {
		*dst = *src
	}
}

func setPtr[T any](dst **T, src *T) {
	if src != nil {
		*dst = src
	}
}

func boolOrDefault(v *bool, def bool) bool {
	if v != nil {
		return *v
	}
	return def
}
