// Package storage persists completed voyages and their ship logs to a
// local sqlite database.
package storage

import (
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"

	"github.com/a-bouts/sim-server/boat"
	"github.com/a-bouts/sim-server/sim"
)

type Voyage struct {
	ID         uint `gorm:"primarykey"`
	BoatName   string
	StartTime  time.Time
	Status     string
	Iterations int
	Distance   float64
	CreatedAt  time.Time
	Entries    []Entry `gorm:"constraint:OnDelete:CASCADE"`
}

type Entry struct {
	ID          uint `gorm:"primarykey"`
	VoyageID    uint `gorm:"index"`
	Timestamp   time.Time
	Lat         float64
	Lon         float64
	Speed       float64
	Angle       float64
	Course      float64
	Heading     float64
	TrueBearing float64
	Cargo       float64
	Status      int
}

type Store struct {
	db *gorm.DB
}

func Open(path string) (*Store, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{})
	if err != nil {
		return nil, err
	}
	if err := db.AutoMigrate(&Voyage{}, &Entry{}); err != nil {
		return nil, err
	}
	return &Store{db: db}, nil
}

// SaveVoyage stores one run's result and log, returning the voyage id.
func (s *Store) SaveVoyage(b *boat.Boat, res *sim.Result) (uint, error) {
	v := Voyage{
		BoatName:   b.Name,
		Status:     res.Status.String(),
		Iterations: res.Iterations,
		Distance:   b.Plan.Length(),
		Entries:    make([]Entry, 0, len(res.Log)),
	}
	if len(res.Log) > 0 {
		v.StartTime = res.Log[0].Timestamp
	}
	for _, e := range res.Log {
		v.Entries = append(v.Entries, Entry{
			Timestamp:   e.Timestamp,
			Lat:         e.CoordinatesCurrent.Lat,
			Lon:         e.CoordinatesCurrent.Lon,
			Speed:       e.Velocity.Magnitude,
			Angle:       e.Velocity.Angle,
			Course:      e.Course,
			Heading:     e.Heading,
			TrueBearing: e.TrueBearing,
			Cargo:       e.CargoOnBoard,
			Status:      int(e.Status),
		})
	}

	if err := s.db.Create(&v).Error; err != nil {
		return 0, err
	}
	return v.ID, nil
}

// Voyages lists stored voyages, most recent first, without their entries.
func (s *Store) Voyages() ([]Voyage, error) {
	var voyages []Voyage
	err := s.db.Order("created_at desc").Find(&voyages).Error
	return voyages, err
}

// Voyage loads one voyage with its log entries.
func (s *Store) Voyage(id uint) (Voyage, error) {
	var v Voyage
	err := s.db.Preload("Entries").First(&v, id).Error
	return v, err
}
