package database

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/killallgit/audioengine/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestInitialize(t *testing.T) {
	tests := []struct {
		name        string
		dbPath      string
		wantErr     bool
		checkResult func(*testing.T, *DB)
	}{
		{
			name:    "successful connection with in-memory database",
			dbPath:  ":memory:",
			wantErr: false,
			checkResult: func(t *testing.T, conn *DB) {
				assert.NotNil(t, conn)
				assert.NotNil(t, conn.DB)

				sqlDB, err := conn.DB.DB()
				require.NoError(t, err)
				assert.Equal(t, 1, sqlDB.Stats().MaxOpenConnections)
			},
		},
		{
			name:    "successful connection with file database",
			dbPath:  filepath.Join(t.TempDir(), "test.db"),
			wantErr: false,
			checkResult: func(t *testing.T, conn *DB) {
				assert.NotNil(t, conn)
				assert.NotNil(t, conn.DB)

				sqlDB, err := conn.DB.DB()
				require.NoError(t, err)
				assert.Equal(t, 100, sqlDB.Stats().MaxOpenConnections)
			},
		},
		{
			name:    "nested directory is created",
			dbPath:  filepath.Join(t.TempDir(), "data", "cache", "waveforms.db"),
			wantErr: false,
			checkResult: func(t *testing.T, conn *DB) {
				assert.NoError(t, conn.HealthCheck())
			},
		},
		{
			name:    "empty database path creates in-memory database",
			dbPath:  "",
			wantErr: false,
			checkResult: func(t *testing.T, conn *DB) {
				assert.NotNil(t, conn)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			conn, err := Initialize(tt.dbPath, false)

			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)

			if tt.checkResult != nil {
				tt.checkResult(t, conn)
			}

			conn.Close()
		})
	}
}

func TestDB_Close(t *testing.T) {
	conn, err := Initialize(":memory:", false)
	require.NoError(t, err)
	require.NotNil(t, conn)

	err = conn.Close()
	assert.NoError(t, err)

	err = conn.HealthCheck()
	assert.Error(t, err, "HealthCheck should fail after database is closed")
}

func TestDB_HealthCheck(t *testing.T) {
	tests := []struct {
		name      string
		setupConn func() (*DB, func())
		wantErr   bool
	}{
		{
			name: "healthy connection",
			setupConn: func() (*DB, func()) {
				conn, _ := Initialize(":memory:", false)
				return conn, func() {
					if conn != nil {
						conn.Close()
					}
				}
			},
			wantErr: false,
		},
		{
			name: "closed connection",
			setupConn: func() (*DB, func()) {
				conn, _ := Initialize(":memory:", false)
				conn.Close()
				return conn, func() {}
			},
			wantErr: true,
		},
		{
			name: "nil connection",
			setupConn: func() (*DB, func()) {
				return nil, func() {}
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			conn, cleanup := tt.setupConn()
			defer cleanup()

			err := conn.HealthCheck()

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestDB_AutoMigrate(t *testing.T) {
	conn, err := Initialize(":memory:", false)
	require.NoError(t, err)
	defer conn.Close()

	require.NoError(t, conn.AutoMigrate(models.AllModels()...))

	var count int64
	err = conn.DB.Raw("SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='waveforms'").Scan(&count).Error
	assert.NoError(t, err)
	assert.Equal(t, int64(1), count)

	// Migrating again is a no-op
	assert.NoError(t, conn.AutoMigrate(models.AllModels()...))
	assert.NoError(t, conn.AutoMigrate())
}

func TestDB_WaveformUniquePerFileAndWidth(t *testing.T) {
	conn, err := InitializeWithMigrations(":memory:", false)
	require.NoError(t, err)
	defer conn.Close()

	modTime := time.Now()
	newRow := func(path string, peaks []float64) *models.Waveform {
		wf := &models.Waveform{FilePath: path, Duration: 30, SampleRate: 44100, Channels: 2}
		require.NoError(t, wf.SetPeaks(peaks))
		wf.SetFingerprint(1024, modTime)
		return wf
	}

	require.NoError(t, conn.Create(newRow("a.mp3", []float64{0.1, 0.2})).Error)
	require.NoError(t, conn.Create(newRow("a.mp3", []float64{0.1, 0.2, 0.3})).Error, "different width")
	require.NoError(t, conn.Create(newRow("b.mp3", []float64{0.1, 0.2})).Error, "different file")

	err = conn.Create(newRow("a.mp3", []float64{0.5, 0.6})).Error
	assert.Error(t, err, "same file and width must be unique")

	var stored models.Waveform
	require.NoError(t, conn.First(&stored, "file_path = ? AND width = ?", "a.mp3", 3).Error)
	peaks, err := stored.Peaks()
	require.NoError(t, err)
	assert.Equal(t, []float64{0.1, 0.2, 0.3}, peaks)
	assert.True(t, stored.Matches(1024, modTime))
}

func TestDB_Transaction(t *testing.T) {
	conn, err := InitializeWithMigrations(":memory:", false)
	require.NoError(t, err)
	defer conn.Close()

	t.Run("failed transaction rollback", func(t *testing.T) {
		var countBefore int64
		conn.DB.Model(&models.Waveform{}).Count(&countBefore)

		err := conn.DB.Transaction(func(tx *gorm.DB) error {
			record := &models.Waveform{FilePath: "rollback.wav", PeaksData: []byte("[]")}
			if err := tx.Create(record).Error; err != nil {
				return err
			}
			return gorm.ErrInvalidTransaction
		})
		assert.Error(t, err)

		var countAfter int64
		conn.DB.Model(&models.Waveform{}).Count(&countAfter)
		assert.Equal(t, countBefore, countAfter)
	})
}

func TestInitializeWithMigrations(t *testing.T) {
	tests := []struct {
		name    string
		dbPath  string
		wantErr error
	}{
		{
			name:   "in-memory database",
			dbPath: ":memory:",
		},
		{
			name:   "file database",
			dbPath: filepath.Join(t.TempDir(), "test.db"),
		},
		{
			name:    "error when database path not configured",
			dbPath:  "",
			wantErr: ErrPathNotConfigured,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, err := InitializeWithMigrations(tt.dbPath, false)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, db)
				return
			}

			require.NoError(t, err)
			defer db.Close()

			var count int64
			err = db.DB.Raw("SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='waveforms'").Scan(&count).Error
			assert.NoError(t, err)
			assert.Equal(t, int64(1), count, "waveforms table should exist")
		})
	}
}

func TestDB_Status(t *testing.T) {
	conn, err := Initialize(":memory:", false)
	require.NoError(t, err)
	defer conn.Close()

	statuses, err := conn.Status(models.AllModels()...)
	require.NoError(t, err)
	require.Len(t, statuses, 1)
	assert.Equal(t, TableStatus{Table: "waveforms", Exists: false, Rows: 0}, statuses[0])

	require.NoError(t, conn.AutoMigrate(models.AllModels()...))
	require.NoError(t, conn.Create(&models.Waveform{FilePath: "x.wav", Width: 2, PeaksData: []byte("[0,1]")}).Error)

	statuses, err = conn.Status(models.AllModels()...)
	require.NoError(t, err)
	assert.Equal(t, TableStatus{Table: "waveforms", Exists: true, Rows: 1}, statuses[0])
}
