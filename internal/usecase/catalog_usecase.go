package usecase

import (
	"context"

	"campus-prep/internal/datastore"
	"campus-prep/internal/domain/company"
	"campus-prep/internal/domain/faq"
	"campus-prep/internal/domain/update"
)

type CompanyUsecase interface {
	ListCompanies(ctx context.Context) ([]company.Company, error)
	GetCompanyByID(ctx context.Context, id string) (company.Company, bool, error)
	AddCompany(ctx context.Context, in company.CreateInput) (company.Company, error)
	DeleteCompany(ctx context.Context, id string) (bool, error)
}

type FAQUsecase interface {
	ListFAQs(ctx context.Context) ([]faq.FAQ, error)
	ListFAQsByType(ctx context.Context, t faq.Type) ([]faq.FAQ, error)
	AddFAQ(ctx context.Context, in faq.CreateInput) (faq.FAQ, error)
	DeleteFAQ(ctx context.Context, id string) (bool, error)
}

type UpdateUsecase interface {
	ListUpdates(ctx context.Context) ([]update.Update, error)
	ListNewUpdates(ctx context.Context, limit int) ([]update.Update, error)
	AddUpdate(ctx context.Context, in update.CreateInput) (update.Update, error)
	DeleteUpdate(ctx context.Context, id string) (bool, error)
}

var (
	_ CompanyUsecase = (*datastore.Service)(nil)
	_ FAQUsecase     = (*datastore.Service)(nil)
	_ UpdateUsecase  = (*datastore.Service)(nil)
)
