package services

import (
	"bytes"
	"fmt"
	"mime/multipart"
	"net/textproto"
	"sync"
	"testing"

	"paper-review-api/config"
	"paper-review-api/models"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const testPassword = "correct-horse"

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// every connection to :memory: is a separate database
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, config.Migrate(db))
	return db
}

func seedUser(t *testing.T, db *gorm.DB, name, email string, role models.Role) models.User {
	t.Helper()
	hash, err := HashPassword(testPassword)
	require.NoError(t, err)
	user := models.User{Name: name, Email: email, PasswordHash: hash, Role: role}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func seedPaper(t *testing.T, db *gorm.DB, title string) models.Paper {
	t.Helper()
	paper := models.Paper{
		Title:       title,
		AuthorName:  "Ada Author",
		AuthorEmail: "ada@uni.example",
		Affiliation: "University of Examples",
		Abstract:    "An abstract about " + title,
		Keywords:    []string{"graphs", "review"},
		FilePath:    "uploads/" + title + ".pdf",
	}
	require.NoError(t, db.Create(&paper).Error)
	return paper
}

func multipartFile(t *testing.T, filename, contentType string, body []byte) *multipart.FileHeader {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="paperPdf"; filename="%s"`, filename))
	header.Set("Content-Type", contentType)
	part, err := writer.CreatePart(header)
	require.NoError(t, err)
	_, err = part.Write(body)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	form, err := multipart.NewReader(&buf, writer.Boundary()).ReadForm(1 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { form.RemoveAll() })
	return form.File["paperPdf"][0]
}

type recordingNotifier struct {
	mu       sync.Mutex
	assigned []string
	decided  []models.PaperStatus
}

func (n *recordingNotifier) ReviewerAssigned(paper models.Paper, reviewer models.User) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.assigned = append(n.assigned, reviewer.Email)
}

func (n *recordingNotifier) PaperDecided(paper models.Paper) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.decided = append(n.decided, paper.Status)
}

func countReviews(t *testing.T, db *gorm.DB, paperID string) int64 {
	t.Helper()
	var count int64
	require.NoError(t, db.Model(&models.Review{}).Where("paper_id = ?", paperID).Count(&count).Error)
	return count
}
