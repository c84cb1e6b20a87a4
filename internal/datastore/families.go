package datastore

import (
	"context"
	"strings"

	"campus-prep/internal/domain/company"
	"campus-prep/internal/domain/faq"
	"campus-prep/internal/domain/update"
)

var (
	companiesFamily = familyDef[company.Company]{
		name:     FamilyCompanies,
		key:      CompaniesKey,
		id:       func(c company.Company) string { return c.ID },
		defaults: defaultCompanies,
	}
	faqsFamily = familyDef[faq.FAQ]{
		name:     FamilyFAQs,
		key:      FAQsKey,
		id:       func(f faq.FAQ) string { return f.ID },
		defaults: defaultFAQs,
	}
	updatesFamily = familyDef[update.Update]{
		name:     FamilyUpdates,
		key:      UpdatesKey,
		id:       func(u update.Update) string { return u.ID },
		defaults: defaultUpdates,
	}
)

func (s *Service) ListCompanies(ctx context.Context) ([]company.Company, error) {
	return list(ctx, s, companiesFamily)
}

func (s *Service) GetCompanyByID(ctx context.Context, id string) (company.Company, bool, error) {
	items, err := s.ListCompanies(ctx)
	if err != nil {
		return company.Company{}, false, err
	}
	for _, c := range items {
		if c.ID == id {
			return c, true, nil
		}
	}
	return company.Company{}, false, nil
}

func (s *Service) AddCompany(ctx context.Context, in company.CreateInput) (company.Company, error) {
	if strings.TrimSpace(in.Name) == "" {
		return company.Company{}, ErrInvalidInput
	}
	return add(ctx, s, companiesFamily, in.WithID)
}

func (s *Service) DeleteCompany(ctx context.Context, id string) (bool, error) {
	return remove(ctx, s, companiesFamily, id)
}

func (s *Service) ListFAQs(ctx context.Context) ([]faq.FAQ, error) {
	return list(ctx, s, faqsFamily)
}

// ListFAQsByType keeps stored order. An empty type returns every FAQ.
func (s *Service) ListFAQsByType(ctx context.Context, t faq.Type) ([]faq.FAQ, error) {
	items, err := s.ListFAQs(ctx)
	if err != nil || t == "" {
		return items, err
	}
	out := make([]faq.FAQ, 0, len(items))
	for _, f := range items {
		if f.Type == t {
			out = append(out, f)
		}
	}
	return out, nil
}

func (s *Service) AddFAQ(ctx context.Context, in faq.CreateInput) (faq.FAQ, error) {
	if strings.TrimSpace(in.Question) == "" || !in.Type.Valid() {
		return faq.FAQ{}, ErrInvalidInput
	}
	return add(ctx, s, faqsFamily, in.WithID)
}

func (s *Service) DeleteFAQ(ctx context.Context, id string) (bool, error) {
	return remove(ctx, s, faqsFamily, id)
}

func (s *Service) ListUpdates(ctx context.Context) ([]update.Update, error) {
	return list(ctx, s, updatesFamily)
}

// ListNewUpdates returns updates flagged new, in stored order, at most limit
// of them when limit > 0.
func (s *Service) ListNewUpdates(ctx context.Context, limit int) ([]update.Update, error) {
	items, err := s.ListUpdates(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]update.Update, 0, len(items))
	for _, u := range items {
		if !u.IsNew {
			continue
		}
		out = append(out, u)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}

func (s *Service) AddUpdate(ctx context.Context, in update.CreateInput) (update.Update, error) {
	if strings.TrimSpace(in.Title) == "" {
		return update.Update{}, ErrInvalidInput
	}
	return add(ctx, s, updatesFamily, in.WithID)
}

func (s *Service) DeleteUpdate(ctx context.Context, id string) (bool, error) {
	return remove(ctx, s, updatesFamily, id)
}
