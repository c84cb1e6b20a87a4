package datastore

import (
	"campus-prep/internal/domain/company"
	"campus-prep/internal/domain/faq"
	"campus-prep/internal/domain/update"
)

func defaultCompanies(newID func() string) []company.Company {
	return []company.Company{
		{
			ID:          newID(),
			Name:        "Google",
			Logo:        "https://upload.wikimedia.org/wikipedia/commons/thumb/5/53/Google_%22G%22_Logo.svg/1024px-Google_%22G%22_Logo.svg.png",
			Description: "Leading technology company specializing in internet-related services and products.",
			Eligibility: "CGPA ≥ 8.5, No backlogs",
			VisitDate:   "10 Jun 2025",
			Roles:       []string{"SDE", "Data Scientist", "Product Manager"},
		},
		{
			ID:          newID(),
			Name:        "Microsoft",
			Logo:        "https://upload.wikimedia.org/wikipedia/commons/thumb/4/44/Microsoft_logo.svg/2048px-Microsoft_logo.svg.png",
			Description: "Global technology corporation that develops, manufactures, licenses, and sells computer software.",
			Eligibility: "CGPA ≥ 8.0, No backlogs",
			VisitDate:   "15 Jun 2025",
			Roles:       []string{"Software Engineer", "Cloud Engineer", "UX Designer"},
		},
		{
			ID:          newID(),
			Name:        "Amazon",
			Logo:        "https://upload.wikimedia.org/wikipedia/commons/thumb/a/a9/Amazon_logo.svg/2560px-Amazon_logo.svg.png",
			Description: "American multinational tech company focusing on e-commerce, cloud computing, and AI.",
			Eligibility: "CGPA ≥ 7.5, Max 2 backlogs",
			VisitDate:   "22 Jun 2025",
			Roles:       []string{"SDE", "Business Analyst", "Operations"},
		},
	}
}

func defaultFAQs(newID func() string) []faq.FAQ {
	return []faq.FAQ{
		{
			ID:       newID(),
			Question: "What is the time complexity of QuickSort algorithm?",
			Answer:   "The average time complexity of QuickSort is O(n log n), but in the worst case, it can be O(n²).",
			Company:  "Google",
			Type:     faq.TypeTechnical,
		},
		{
			ID:       newID(),
			Question: "Explain the difference between REST and GraphQL.",
			Answer:   "REST is an architectural style for designing networked applications using standard HTTP methods. GraphQL is a query language for APIs.",
			Company:  "Microsoft",
			Type:     faq.TypeTechnical,
		},
		{
			ID:       newID(),
			Question: "Tell us about a challenging situation in a team project.",
			Answer:   "During my last internship, our team was working on a critical feature with a tight deadline...",
			Company:  "Amazon",
			Type:     faq.TypeHR,
		},
	}
}

func defaultUpdates(newID func() string) []update.Update {
	return []update.Update{
		{
			ID:      newID(),
			Title:   "Google Recruitment Drive Announced",
			Content: "Google will be conducting an on-campus recruitment drive for 2025 batch students. Register before May 30.",
			Date:    "15 May 2025",
			IsNew:   true,
		},
		{
			ID:      newID(),
			Title:   "Pre-Placement Talk: Microsoft",
			Content: "Microsoft will be conducting a pre-placement talk on June 5. Mandatory for all registered students.",
			Date:    "01 Jun 2025",
			IsNew:   true,
		},
		{
			ID:      newID(),
			Title:   "Resume Building Workshop",
			Content: "Learn how to create an impressive resume that will catch the recruiter's eye.",
			Date:    "25 May 2025",
			IsNew:   false,
		},
	}
}
