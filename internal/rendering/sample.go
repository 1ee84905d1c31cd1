package rendering

import "github.com/jonathan/resume-builder/internal/types"

// SampleResume returns a representative resume used to verify templates and to
// preview them in the template picker.
func SampleResume() types.RenderReadyResume {
	return types.RenderReadyResume{
		Name:                "Jordan Rivera",
		Email:               "jordan.rivera@example.com",
		Phone:               "(555) 010-2030",
		LinkedIn:            "linkedin.com/in/jordanrivera",
		GitHub:              "github.com/jrivera",
		ProfessionalSummary: "Backend engineer with eight years of experience building reliable data services and developer tooling.",
		TechnicalSkills:     []string{"Go", "PostgreSQL", "Kubernetes", "gRPC", "Terraform", "AWS"},
		Experience: []types.RenderedExperience{
			{
				ID:        "sample-1",
				Title:     "Senior Software Engineer",
				Company:   "Northwind Logistics",
				StartDate: "2021",
				Points: []string{
					"Led the migration of the shipment tracking pipeline to event streaming, cutting update latency from minutes to seconds.",
					"Designed a multi-tenant rate limiter shared by 40 internal services.",
				},
			},
			{
				ID:        "sample-2",
				Title:     "Software Engineer",
				Company:   "Contoso Health",
				StartDate: "2017",
				EndDate:   "2021",
				Points:    []string{"Built the claims ingestion API serving two million requests per day."},
			},
		},
	}
}
