package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"testing"

	"paper-review-api/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatsAndExport(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	reviews := NewReviewService(db)
	reviews.notifier = &recordingNotifier{}
	reviews.activity = NewActivityHub()

	rita := seedUser(t, db, "Rita", "rita@example.org", models.RoleReviewer)
	seedUser(t, db, "Chair", "chair@example.org", models.RoleAdmin)

	decided := seedPaper(t, db, "decided")
	seedPaper(t, db, "waiting")
	_, err := reviews.AssignReviewer(ctx, decided.ID, rita.ID)
	require.NoError(t, err)
	_, err = reviews.SubmitReview(ctx, decided.ID, rita.ID, SubmitReviewInput{Status: "Approved"})
	require.NoError(t, err)
	require.NoError(t, db.Model(&models.Paper{}).Where("id = ?", decided.ID).Update("status", models.PaperAccepted).Error)

	report := NewReportService(db)
	stats, err := report.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.Total)
	assert.Equal(t, 1, stats.Pending)
	assert.Equal(t, 1, stats.Accepted)
	assert.Equal(t, 0, stats.Rejected)
	assert.Equal(t, int64(2), stats.Users)
	assert.Equal(t, 1, stats.ByAggregate[AggregateAllApproved])
	assert.Equal(t, 1, stats.ByAggregate[AggregateNotAssigned])
	assert.Len(t, stats.Recent, 2)

	var buf bytes.Buffer
	require.NoError(t, report.ExportCSV(ctx, &buf))
	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, exportHeader, rows[0])

	byTitle := map[string][]string{}
	for _, row := range rows[1:] {
		byTitle[row[1]] = row
	}
	require.Contains(t, byTitle, "decided")
	assert.Equal(t, "Accepted", byTitle["decided"][6])
	assert.Equal(t, "All Approved", byTitle["decided"][7])
	assert.Equal(t, "Rita (Approved)", byTitle["decided"][10])
	assert.Equal(t, "Not Assigned", byTitle["waiting"][7])
	assert.Equal(t, "0", byTitle["waiting"][9])
}

func TestExportCSVNeutralizesFormulas(t *testing.T) {
	db := newTestDB(t)
	paper := models.Paper{
		Title:       "=HYPERLINK(\"http://evil.example\")",
		AuthorName:  "+Ada",
		AuthorEmail: "ada@uni.example",
		Affiliation: "@Uni",
		Abstract:    "Abstract",
		Keywords:    []string{"-graphs"},
		FilePath:    "uploads/f.pdf",
	}
	require.NoError(t, db.Create(&paper).Error)

	var buf bytes.Buffer
	require.NoError(t, NewReportService(db).ExportCSV(context.Background(), &buf))
	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)

	row := rows[1]
	assert.Equal(t, "'=HYPERLINK(\"http://evil.example\")", row[1])
	assert.Equal(t, "'+Ada", row[2])
	assert.Equal(t, "ada@uni.example", row[3])
	assert.Equal(t, "'@Uni", row[4])
	assert.Equal(t, "'-graphs", row[5])
}

func TestCSVCell(t *testing.T) {
	tests := map[string]string{
		"":           "",
		"plain":      "plain",
		"=1+1":       "'=1+1",
		"-2":         "'-2",
		"a=b":        "a=b",
		"\tindented": "'\tindented",
	}
	for in, want := range tests {
		assert.Equal(t, want, csvCell(in), in)
	}
}
