package repository

import (
	"context"
	"database/sql"
	"encoding/binary"
	"encoding/json"

	"github.com/rotisserie/eris"
	"github.com/twpayne/go-geom/encoding/ewkb"
	"go.uber.org/zap"

	"github.com/jengzang/health-insights-go/internal/database"
	"github.com/jengzang/health-insights-go/internal/fixtures"
	"github.com/jengzang/health-insights-go/internal/models"
)

const (
	optionCancerType = "cancer_type"
	optionAgeGroup   = "age_group"
)

// fixtureTables are cleared before every save
var fixtureTables = []string{
	"districts", "facilities", "screening_options", "screening_candidates",
	"district_screening", "hotspots", "demographics", "campaigns", "bmi_points",
}

// FixtureRepository persists the fixture store in SQLite
type FixtureRepository struct {
	db *sql.DB
}

// NewFixtureRepository creates a new fixture repository
func NewFixtureRepository(db *sql.DB) *FixtureRepository {
	return &FixtureRepository{db: db}
}

// Save replaces every fixture row with the contents of s in one transaction
func (r *FixtureRepository) Save(ctx context.Context, s *fixtures.Store) error {
	err := database.Transaction(ctx, r.db, func(tx *sql.Tx) error {
		for _, table := range fixtureTables {
			if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
				return eris.Wrapf(err, "repository: clear %s", table)
			}
		}

		steps := []func(context.Context, *sql.Tx, *fixtures.Store) error{
			saveDistricts, saveFacilities, saveScreening, saveHotspots,
			saveDemographics, saveCampaigns, saveBMI,
		}
		for _, step := range steps {
			if err := step(ctx, tx, s); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	zap.L().Info("repository: fixtures saved",
		zap.Int("districts", len(s.Districts)),
		zap.Int("facilities", len(s.Facilities)),
		zap.Int("candidates", len(s.Candidates)),
		zap.Int("hotspots", len(s.Hotspots)))
	return nil
}

func saveDistricts(ctx context.Context, tx *sql.Tx, s *fixtures.Store) error {
	for i, d := range s.Districts {
		var boundary []byte
		if d.Boundary != nil {
			b, err := ewkb.Marshal(d.Boundary, binary.LittleEndian)
			if err != nil {
				return eris.Wrapf(err, "repository: encode boundary of %s", d.Name)
			}
			boundary = b
		}
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO districts (seq, name, population, boundary) VALUES (?, ?, ?, ?)",
			i, d.Name, d.Population, boundary); err != nil {
			return eris.Wrapf(err, "repository: insert district %s", d.Name)
		}
	}
	return nil
}

func saveFacilities(ctx context.Context, tx *sql.Tx, s *fixtures.Store) error {
	for i, f := range s.Facilities {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO facilities (seq, id, lat, lng, name, category, district, description)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			i, f.ID, f.Position.Lat(), f.Position.Lng(), f.Name, string(f.Category), f.District, f.Description); err != nil {
			return eris.Wrapf(err, "repository: insert facility %s", f.ID)
		}
	}
	return nil
}

func saveScreening(ctx context.Context, tx *sql.Tx, s *fixtures.Store) error {
	insertOption := func(seq int, kind, value string) error {
		_, err := tx.ExecContext(ctx,
			"INSERT OR IGNORE INTO screening_options (seq, kind, value) VALUES (?, ?, ?)", seq, kind, value)
		return eris.Wrapf(err, "repository: insert %s option %s", kind, value)
	}
	for i, v := range s.CancerTypes {
		if err := insertOption(i, optionCancerType, v); err != nil {
			return err
		}
	}
	for i, v := range s.AgeGroups {
		if err := insertOption(i, optionAgeGroup, v); err != nil {
			return err
		}
	}

	for i, c := range s.Candidates {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO screening_candidates (seq, id, district, age_group, eligible_for, screened, screening_date)
			VALUES (?, ?, ?, ?, ?, ?, ?)`,
			i, c.ID, c.District, c.AgeGroup, c.EligibleFor, c.Screened, c.ScreeningDate); err != nil {
			return eris.Wrapf(err, "repository: insert candidate %s", c.ID)
		}
	}

	for i, d := range s.DistrictScreening {
		types, err := json.Marshal(d.CancerTypes)
		if err != nil {
			return eris.Wrap(err, "repository: marshal participation by type")
		}
		ages, err := json.Marshal(d.AgeGroups)
		if err != nil {
			return eris.Wrap(err, "repository: marshal participation by age")
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO district_screening
			(seq, district, overall_participation, eligible_count, screened_count, cancer_types, age_groups)
			VALUES (?, ?, ?, ?, ?, ?, ?)`,
			i, d.District, d.OverallParticipation, d.EligibleCount, d.ScreenedCount, string(types), string(ages)); err != nil {
			return eris.Wrapf(err, "repository: insert participation of %s", d.District)
		}
	}
	return nil
}

func saveHotspots(ctx context.Context, tx *sql.Tx, s *fixtures.Store) error {
	for i, h := range s.Hotspots {
		insights, err := json.Marshal(h.Insights)
		if err != nil {
			return eris.Wrapf(err, "repository: marshal insights of %s", h.ID)
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO hotspots (seq, id, lat, lng, radius, category, name, insights, risk_level, district)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			i, h.ID, h.Position.Lat(), h.Position.Lng(), h.Radius, string(h.Category), h.Name,
			string(insights), string(h.RiskLevel), h.District); err != nil {
			return eris.Wrapf(err, "repository: insert hotspot %s", h.ID)
		}
	}
	return nil
}

func saveDemographics(ctx context.Context, tx *sql.Tx, s *fixtures.Store) error {
	for i, d := range s.Demographics {
		ages, err := json.Marshal(d.AgeGroups)
		if err != nil {
			return eris.Wrapf(err, "repository: marshal age groups of %s", d.District)
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO demographics (seq, district, population, density, national, expat, male, female, age_groups)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			i, d.District, d.Population, d.Density,
			d.NationalVsExpat.National, d.NationalVsExpat.Expat,
			d.GenderDistribution.Male, d.GenderDistribution.Female, string(ages)); err != nil {
			return eris.Wrapf(err, "repository: insert demographics of %s", d.District)
		}
	}
	return nil
}

func saveCampaigns(ctx context.Context, tx *sql.Tx, s *fixtures.Store) error {
	for i, c := range s.Campaigns {
		districts, err := json.Marshal(c.Districts)
		if err != nil {
			return eris.Wrapf(err, "repository: marshal districts of %s", c.ID)
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO campaigns (seq, id, name, description, start_date, end_date, districts, type)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			i, c.ID, c.Name, c.Description, c.StartDate, c.EndDate, string(districts), c.Type); err != nil {
			return eris.Wrapf(err, "repository: insert campaign %s", c.ID)
		}
	}
	return nil
}

func saveBMI(ctx context.Context, tx *sql.Tx, s *fixtures.Store) error {
	stmt, err := tx.PrepareContext(ctx, "INSERT INTO bmi_points (seq, lat, lng, bmi, intensity) VALUES (?, ?, ?, ?, ?)")
	if err != nil {
		return eris.Wrap(err, "repository: prepare bmi insert")
	}
	defer stmt.Close()

	for i, p := range s.BMI {
		if _, err := stmt.ExecContext(ctx, i, p.Lat, p.Lng, p.BMI, p.Intensity); err != nil {
			return eris.Wrapf(err, "repository: insert bmi point %d", i)
		}
	}
	return nil
}

// Load rebuilds a fixture store from the database
func (r *FixtureRepository) Load(ctx context.Context) (*fixtures.Store, error) {
	var c fixtures.Collections
	var err error

	if c.Districts, err = r.loadDistricts(ctx); err != nil {
		return nil, err
	}
	if c.Facilities, err = r.loadFacilities(ctx); err != nil {
		return nil, err
	}
	if c.Screening, err = r.loadScreening(ctx); err != nil {
		return nil, err
	}
	if c.Hotspots, err = r.loadHotspots(ctx); err != nil {
		return nil, err
	}
	if c.Demographics, err = r.loadDemographics(ctx); err != nil {
		return nil, err
	}
	if c.Campaigns, err = r.loadCampaigns(ctx); err != nil {
		return nil, err
	}
	if c.BMI, err = r.loadBMI(ctx); err != nil {
		return nil, err
	}

	zap.L().Info("repository: fixtures loaded",
		zap.Int("districts", len(c.Districts)),
		zap.Int("facilities", len(c.Facilities)),
		zap.Int("candidates", len(c.Screening.EligibleIndividuals)),
		zap.Int("hotspots", len(c.Hotspots)))
	return fixtures.NewStore(c), nil
}

func (r *FixtureRepository) loadDistricts(ctx context.Context) ([]models.District, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT name, population, boundary FROM districts ORDER BY seq")
	if err != nil {
		return nil, eris.Wrap(err, "repository: query districts")
	}
	defer rows.Close()

	var out []models.District
	for rows.Next() {
		var d models.District
		var boundary []byte
		if err := rows.Scan(&d.Name, &d.Population, &boundary); err != nil {
			return nil, eris.Wrap(err, "repository: scan district")
		}
		if len(boundary) > 0 {
			g, err := ewkb.Unmarshal(boundary)
			if err != nil {
				return nil, eris.Wrapf(err, "repository: decode boundary of %s", d.Name)
			}
			d.Boundary = g
		}
		out = append(out, d)
	}
	return out, eris.Wrap(rows.Err(), "repository: iterate districts")
}

func (r *FixtureRepository) loadFacilities(ctx context.Context) ([]models.Facility, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT id, lat, lng, name, category, district, description FROM facilities ORDER BY seq")
	if err != nil {
		return nil, eris.Wrap(err, "repository: query facilities")
	}
	defer rows.Close()

	var out []models.Facility
	for rows.Next() {
		var f models.Facility
		var lat, lng float64
		var category string
		if err := rows.Scan(&f.ID, &lat, &lng, &f.Name, &category, &f.District, &f.Description); err != nil {
			return nil, eris.Wrap(err, "repository: scan facility")
		}
		f.Position = models.LatLng{lat, lng}
		f.Category = models.ParseFacilityCategory(category)
		out = append(out, f)
	}
	return out, eris.Wrap(rows.Err(), "repository: iterate facilities")
}

func (r *FixtureRepository) loadScreening(ctx context.Context) (models.ScreeningData, error) {
	var data models.ScreeningData

	rows, err := r.db.QueryContext(ctx, "SELECT kind, value FROM screening_options ORDER BY kind, seq")
	if err != nil {
		return data, eris.Wrap(err, "repository: query screening options")
	}
	for rows.Next() {
		var kind, value string
		if err := rows.Scan(&kind, &value); err != nil {
			rows.Close()
			return data, eris.Wrap(err, "repository: scan screening option")
		}
		switch kind {
		case optionCancerType:
			data.CancerTypes = append(data.CancerTypes, value)
		case optionAgeGroup:
			data.AgeGroups = append(data.AgeGroups, value)
		}
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return data, eris.Wrap(err, "repository: iterate screening options")
	}

	rows, err = r.db.QueryContext(ctx,
		"SELECT id, district, age_group, eligible_for, screened, screening_date FROM screening_candidates ORDER BY seq")
	if err != nil {
		return data, eris.Wrap(err, "repository: query candidates")
	}
	for rows.Next() {
		var c models.ScreeningCandidate
		var date sql.NullString
		if err := rows.Scan(&c.ID, &c.District, &c.AgeGroup, &c.EligibleFor, &c.Screened, &date); err != nil {
			rows.Close()
			return data, eris.Wrap(err, "repository: scan candidate")
		}
		if date.Valid {
			c.ScreeningDate = &date.String
		}
		data.EligibleIndividuals = append(data.EligibleIndividuals, c)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return data, eris.Wrap(err, "repository: iterate candidates")
	}

	rows, err = r.db.QueryContext(ctx,
		`SELECT district, overall_participation, eligible_count, screened_count, cancer_types, age_groups
		FROM district_screening ORDER BY seq`)
	if err != nil {
		return data, eris.Wrap(err, "repository: query participation")
	}
	defer rows.Close()
	for rows.Next() {
		var d models.DistrictScreening
		var types, ages string
		if err := rows.Scan(&d.District, &d.OverallParticipation, &d.EligibleCount, &d.ScreenedCount, &types, &ages); err != nil {
			return data, eris.Wrap(err, "repository: scan participation")
		}
		if err := json.Unmarshal([]byte(types), &d.CancerTypes); err != nil {
			return data, eris.Wrapf(err, "repository: decode participation by type of %s", d.District)
		}
		if err := json.Unmarshal([]byte(ages), &d.AgeGroups); err != nil {
			return data, eris.Wrapf(err, "repository: decode participation by age of %s", d.District)
		}
		data.DistrictScreening = append(data.DistrictScreening, d)
	}
	return data, eris.Wrap(rows.Err(), "repository: iterate participation")
}

func (r *FixtureRepository) loadHotspots(ctx context.Context) ([]models.Hotspot, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT id, lat, lng, radius, category, name, insights, risk_level, district FROM hotspots ORDER BY seq")
	if err != nil {
		return nil, eris.Wrap(err, "repository: query hotspots")
	}
	defer rows.Close()

	var out []models.Hotspot
	for rows.Next() {
		var h models.Hotspot
		var lat, lng float64
		var category, insights, risk string
		if err := rows.Scan(&h.ID, &lat, &lng, &h.Radius, &category, &h.Name, &insights, &risk, &h.District); err != nil {
			return nil, eris.Wrap(err, "repository: scan hotspot")
		}
		if err := json.Unmarshal([]byte(insights), &h.Insights); err != nil {
			return nil, eris.Wrapf(err, "repository: decode insights of %s", h.ID)
		}
		h.Position = models.LatLng{lat, lng}
		h.Category = models.ParseHotspotCategory(category)
		h.RiskLevel = models.ParseRiskLevel(risk)
		out = append(out, h)
	}
	return out, eris.Wrap(rows.Err(), "repository: iterate hotspots")
}

func (r *FixtureRepository) loadDemographics(ctx context.Context) ([]models.DemographicProfile, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT district, population, density, national, expat, male, female, age_groups
		FROM demographics ORDER BY seq`)
	if err != nil {
		return nil, eris.Wrap(err, "repository: query demographics")
	}
	defer rows.Close()

	var out []models.DemographicProfile
	for rows.Next() {
		var d models.DemographicProfile
		var ages string
		if err := rows.Scan(&d.District, &d.Population, &d.Density,
			&d.NationalVsExpat.National, &d.NationalVsExpat.Expat,
			&d.GenderDistribution.Male, &d.GenderDistribution.Female, &ages); err != nil {
			return nil, eris.Wrap(err, "repository: scan demographics")
		}
		if err := json.Unmarshal([]byte(ages), &d.AgeGroups); err != nil {
			return nil, eris.Wrapf(err, "repository: decode age groups of %s", d.District)
		}
		out = append(out, d)
	}
	return out, eris.Wrap(rows.Err(), "repository: iterate demographics")
}

func (r *FixtureRepository) loadCampaigns(ctx context.Context) ([]models.Campaign, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT id, name, description, start_date, end_date, districts, type FROM campaigns ORDER BY seq")
	if err != nil {
		return nil, eris.Wrap(err, "repository: query campaigns")
	}
	defer rows.Close()

	var out []models.Campaign
	for rows.Next() {
		var c models.Campaign
		var districts string
		if err := rows.Scan(&c.ID, &c.Name, &c.Description, &c.StartDate, &c.EndDate, &districts, &c.Type); err != nil {
			return nil, eris.Wrap(err, "repository: scan campaign")
		}
		if err := json.Unmarshal([]byte(districts), &c.Districts); err != nil {
			return nil, eris.Wrapf(err, "repository: decode districts of %s", c.ID)
		}
		out = append(out, c)
	}
	return out, eris.Wrap(rows.Err(), "repository: iterate campaigns")
}

func (r *FixtureRepository) loadBMI(ctx context.Context) ([]models.BMIPoint, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT lat, lng, bmi, intensity FROM bmi_points ORDER BY seq")
	if err != nil {
		return nil, eris.Wrap(err, "repository: query bmi points")
	}
	defer rows.Close()

	var out []models.BMIPoint
	for rows.Next() {
		var p models.BMIPoint
		if err := rows.Scan(&p.Lat, &p.Lng, &p.BMI, &p.Intensity); err != nil {
			return nil, eris.Wrap(err, "repository: scan bmi point")
		}
		out = append(out, p)
	}
	return out, eris.Wrap(rows.Err(), "repository: iterate bmi points")
}
