package testutil

import (
	"jt-go/internal/catalog"
	"jt-go/internal/model"
)

// FixturePostings returns a small catalog of postings covering every
// work mode, experience bracket and source used by the tests.
func FixturePostings() []model.Posting {
	return []model.Posting{
		{
			ID:            "job-001",
			Title:         "Frontend Engineer",
			Company:       "PixelWorks",
			Location:      "Bangalore",
			Mode:          model.ModeRemote,
			Experience:    model.ExperienceOneToThree,
			SalaryRange:   "12-18 LPA",
			Skills:        []string{"React", "TypeScript", "CSS"},
			Description:   "Build rich frontend experiences with React and TypeScript.",
			Source:        "LinkedIn",
			PostedDaysAgo: 1,
			ApplyURL:      "https://example.com/jobs/job-001",
		},
		{
			ID:            "job-002",
			Title:         "Backend Developer",
			Company:       "DataForge",
			Location:      "Pune",
			Mode:          model.ModeHybrid,
			Experience:    model.ExperienceThreeToFive,
			SalaryRange:   "20-28 LPA",
			Skills:        []string{"Go", "PostgreSQL"},
			Description:   "Design APIs and storage layers for high-volume pipelines.",
			Source:        "Naukri",
			PostedDaysAgo: 4,
			ApplyURL:      "https://example.com/jobs/job-002",
		},
		{
			ID:            "job-003",
			Title:         "QA Analyst",
			Company:       "TestLabs",
			Location:      "Chennai",
			Mode:          model.ModeOnsite,
			Experience:    model.ExperienceFresher,
			SalaryRange:   "4-6 LPA",
			Skills:        []string{"Selenium", "Python"},
			Description:   "Own regression suites and release sign-off.",
			Source:        "Indeed",
			PostedDaysAgo: 0,
			ApplyURL:      "https://example.com/jobs/job-003",
		},
		{
			ID:            "job-004",
			Title:         "React Developer",
			Company:       "AppNest",
			Location:      "Hyderabad",
			Mode:          model.ModeRemote,
			Experience:    model.ExperienceZeroToOne,
			SalaryRange:   "8-11 LPA",
			Skills:        []string{"React", "Redux"},
			Description:   "Ship features for a consumer mobile web product.",
			Source:        "LinkedIn",
			PostedDaysAgo: 7,
			ApplyURL:      "https://example.com/jobs/job-004",
		},
		{
			ID:            "job-005",
			Title:         "DevOps Engineer",
			Company:       "CloudRig",
			Location:      "Bangalore",
			Mode:          model.ModeHybrid,
			Experience:    model.ExperienceOneToThree,
			SalaryRange:   "Competitive",
			Skills:        []string{"Kubernetes", "Terraform"},
			Description:   "Automate deployments and keep the platform healthy.",
			Source:        "Naukri",
			PostedDaysAgo: 2,
			ApplyURL:      "https://example.com/jobs/job-005",
		},
	}
}

// FixtureCatalog returns a catalog built from FixturePostings.
func FixtureCatalog() *catalog.Catalog {
	return catalog.New(FixturePostings())
}

// FixturePreferences returns preferences that match job-001 strongly.
func FixturePreferences() model.Preferences {
	return model.Preferences{
		RoleKeywords:       "frontend, react",
		PreferredLocations: []string{"Bangalore"},
		PreferredModes:     []string{"Remote"},
		ExperienceLevel:    "1-3",
		Skills:             "react, typescript",
		MinMatchScore:      model.DefaultMinMatchScore,
	}
}
