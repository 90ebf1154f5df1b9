package storage

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/posecam/internal/driver"
)

var ErrNoTrack = errors.New("storage: nil track")

var trackHeader = []string{"time", "x", "y", "z", "qw", "qx", "qy", "qz", "progress"}

// Store keeps recorded takes on disk, one directory per take holding
// metadata.json and track.csv.
type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

func (s *Store) Dir() string { return s.baseDir }

type TakeMetadata struct {
	ID        string             `json:"id"`
	Name      string             `json:"name"`
	From      string             `json:"from,omitempty"`
	Pose      string             `json:"pose"`
	Timestamp time.Time          `json:"timestamp"`
	Dt        float64            `json:"dt"`
	Duration  float64            `json:"duration"`
	Steps     int                `json:"steps"`
	Overshoot string             `json:"overshoot"`
	Completed bool               `json:"completed"`
	Metrics   map[string]float64 `json:"metrics"`
}

// Save writes a take and returns its id. Meta fields derived from the track
// (duration, steps, completion, metrics) are filled in from it.
func (s *Store) Save(meta TakeMetadata, track *driver.Track) (string, error) {
	if track == nil {
		return "", ErrNoTrack
	}

	if meta.Timestamp.IsZero() {
		meta.Timestamp = time.Now()
	}
	name := meta.Name
	if name == "" {
		name = meta.Pose
	}
	if name == "" {
		name = "take"
	}

	id, dir, err := s.makeTakeDir(slug(name), meta.Timestamp)
	if err != nil {
		return "", err
	}

	meta.ID = id
	meta.Duration = track.Final().Time
	meta.Steps = track.Steps
	meta.Completed = track.Completed
	meta.Metrics = track.Metrics
	if meta.Metrics == nil {
		meta.Metrics = map[string]float64{}
	}

	if err := writeMetadata(filepath.Join(dir, "metadata.json"), meta); err != nil {
		return "", err
	}
	if err := writeTrack(filepath.Join(dir, "track.csv"), track); err != nil {
		return "", err
	}
	return id, nil
}

func (s *Store) makeTakeDir(name string, ts time.Time) (string, string, error) {
	base := fmt.Sprintf("%s_%d", name, ts.Unix())
	id := base
	for n := 2; ; n++ {
		dir := filepath.Join(s.baseDir, id)
		err := os.Mkdir(dir, 0755)
		if err == nil {
			return id, dir, nil
		}
		if !os.IsExist(err) {
			return "", "", err
		}
		id = fmt.Sprintf("%s_%d", base, n)
	}
}

func writeMetadata(path string, meta TakeMetadata) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(meta)
}

func writeTrack(path string, track *driver.Track) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(trackHeader); err != nil {
		return err
	}

	for _, smp := range track.Samples {
		p, q := smp.Position, smp.Orientation
		vals := []float64{smp.Time, p[0], p[1], p[2], q.W, q.V[0], q.V[1], q.V[2], smp.Progress}
		row := make([]string, len(vals))
		for i, v := range vals {
			row[i] = strconv.FormatFloat(v, 'f', 6, 64)
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}

// List returns every readable take, oldest first.
func (s *Store) List() ([]TakeMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []TakeMetadata{}, nil
		}
		return nil, err
	}

	takes := make([]TakeMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		takes = append(takes, *meta)
	}

	sort.SliceStable(takes, func(i, j int) bool {
		return takes[i].Timestamp.Before(takes[j].Timestamp)
	})
	return takes, nil
}

func (s *Store) Load(id string) (*TakeMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, id, "metadata.json"))
	if err != nil {
		return nil, err
	}

	var meta TakeMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("%s: %w", id, err)
	}
	return &meta, nil
}

// LoadTrack reads the samples of a take back. Metrics, step count and
// completion come from the metadata.
func (s *Store) LoadTrack(id string) (*driver.Track, error) {
	meta, err := s.Load(id)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(filepath.Join(s.baseDir, id, "track.csv"))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", id, err)
	}

	track := &driver.Track{
		Samples:   make([]driver.Sample, 0, len(records)),
		Metrics:   meta.Metrics,
		Steps:     meta.Steps,
		Completed: meta.Completed,
	}

	for i, record := range records {
		if i == 0 || len(record) < 8 {
			continue
		}
		vals := make([]float64, len(record))
		for j, field := range record {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, fmt.Errorf("%s: row %d column %s: %w", id, i, columnName(j), err)
			}
			vals[j] = v
		}

		smp := driver.Sample{
			Time:        vals[0],
			Position:    mgl64.Vec3{vals[1], vals[2], vals[3]},
			Orientation: mgl64.Quat{W: vals[4], V: mgl64.Vec3{vals[5], vals[6], vals[7]}},
			Pose:        meta.Pose,
		}
		if len(vals) > 8 {
			smp.Progress = vals[8]
		}
		track.Samples = append(track.Samples, smp)
	}

	return track, nil
}

func columnName(i int) string {
	if i < len(trackHeader) {
		return trackHeader[i]
	}
	return strconv.Itoa(i)
}

func slug(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-':
			return r
		default:
			return '_'
		}
	}, name)
}
