package services

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/jakechorley/vaccination-hubs/pkg/core/campaign"
	"github.com/jakechorley/vaccination-hubs/pkg/core/model"
	"github.com/jakechorley/vaccination-hubs/pkg/export"
)

// BuildExportPlan turns the current allocation into export rows, hubs in name order
// and people in allocation order within a hub
func BuildExportPlan(c *campaign.Campaign) export.Plan {
	people := peopleBySSN(c.People())
	intervals := c.Intervals()

	var plan export.Plan
	for day, hubs := range c.Plan() {
		for _, hub := range c.Hubs() {
			for _, ssn := range hubs[hub] {
				person := people[ssn]
				age := person.Age(c.ReferenceYear())
				label := ""
				if interval, ok := intervals.Classify(age); ok {
					label = interval.Label()
				}
				plan[day] = append(plan[day], export.Row{
					Hub:       hub,
					SSN:       ssn,
					LastName:  person.LastName,
					FirstName: person.FirstName,
					Age:       age,
					Interval:  label,
				})
			}
		}
	}
	return plan
}

// ExportPlan writes the current allocation to a timestamped workbook in dir and returns its path
func ExportPlan(c *campaign.Campaign, dir string, now time.Time, logger *zap.Logger) (string, error) {
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create export directory: %w", err)
	}

	path := filepath.Join(dir, fmt.Sprintf("allocation_%s.xlsx", now.Format("2006-01-02_15-04-05")))
	plan := BuildExportPlan(c)

	rows := 0
	for _, day := range plan {
		rows += len(day)
	}
	logger.Debug("Exporting plan", zap.String("path", path), zap.Int("rows", rows))

	file, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := export.WritePlan(file, plan); err != nil {
		file.Close()
		return "", fmt.Errorf("failed to export plan: %w", err)
	}
	if err := file.Close(); err != nil {
		return "", fmt.Errorf("failed to close %s: %w", path, err)
	}

	logger.Info("Plan exported", zap.String("path", path), zap.Int("rows", rows))
	return path, nil
}

func peopleBySSN(people []model.Person) map[string]model.Person {
	bySSN := make(map[string]model.Person, len(people))
	for _, person := range people {
		bySSN[person.SSN] = person
	}
	return bySSN
}
