package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arjun/projecthub/internal/app/models"
	"github.com/arjun/projecthub/internal/app/repositories"
)

func strPtr(s string) *string { return &s }

func TestGroupReportCSV(t *testing.T) {
	ctx := context.Background()

	coordinators := newFakeCoordinatorRepo(&models.Coordinator{ID: 5, UserID: 35, School: "School of Engineering"})
	groups := newFakeGroupRepo()
	groups.rosters = []*repositories.GroupRoster{
		{
			Name:           "CS01",
			Branch:         "CS",
			Year:           "Third",
			ProjectTitle:   strPtr("Smart Irrigation"),
			SupervisorName: strPtr("Dr. Iyer"),
			MemberNames:    []string{"Asha Verma", "Ravi Kumar"},
			RollNumbers:    []string{"21BCS045", "21BCS046"},
		},
		{
			Name:        "EC01",
			Branch:      "EC",
			Year:        "Third",
			MemberNames: []string{"Tarun Shah"},
			RollNumbers: []string{"21BEC012"},
		},
	}
	svc := NewReportService(coordinators, groups)

	t.Run("renders header, rows and placeholders", func(t *testing.T) {
		filename, body, err := svc.GroupReportCSV(ctx, 35, "")
		require.NoError(t, err)
		assert.Equal(t, "group_details_School_of_Engineering.csv", filename)

		records, err := csv.NewReader(bytes.NewReader(body)).ReadAll()
		require.NoError(t, err)
		require.Len(t, records, 3)

		assert.Equal(t, []string{"Group Name", "Branch", "Year", "Project Title", "Supervisor", "Member Names", "Roll Numbers"}, records[0])
		assert.Equal(t, []string{"CS01", "CS", "Third", "Smart Irrigation", "Dr. Iyer", "Asha Verma, Ravi Kumar", "21BCS045, 21BCS046"}, records[1])
		assert.Equal(t, []string{"EC01", "EC", "Third", "Not set", "Not assigned", "Tarun Shah", "21BEC012"}, records[2])
	})

	t.Run("branch filter restricts rows and names the file", func(t *testing.T) {
		filename, body, err := svc.GroupReportCSV(ctx, 35, "CS")
		require.NoError(t, err)
		assert.Equal(t, "group_details_School_of_Engineering_CS.csv", filename)

		records, err := csv.NewReader(bytes.NewReader(body)).ReadAll()
		require.NoError(t, err)
		require.Len(t, records, 2)
		assert.Equal(t, "CS01", records[1][0])
	})

	t.Run("empty school still renders the header", func(t *testing.T) {
		empty := newFakeGroupRepo()
		svc := NewReportService(coordinators, empty)

		_, body, err := svc.GroupReportCSV(ctx, 35, "")
		require.NoError(t, err)

		records, err := csv.NewReader(bytes.NewReader(body)).ReadAll()
		require.NoError(t, err)
		assert.Len(t, records, 1)
	})
}
