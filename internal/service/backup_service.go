package service

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"time"

	"pawpass/internal/database"
	"pawpass/internal/models"
	"pawpass/internal/security"
)

// BackupData represents the complete database snapshot structure
type BackupData struct {
	Version     string                       `json:"version"`
	ExportedAt  time.Time                    `json:"exported_at"`
	Pets        []models.Pet                 `json:"pets"`
	Updates     []models.PetUpdate           `json:"updates"`
	Items       []models.ChecklistItem       `json:"checklist_items"`
	Checklists  []models.Checklist           `json:"checklists"`
	Completions []models.ChecklistCompletion `json:"checklist_completions"`
	Weights     []models.WeightRecord        `json:"weight_records"`
}

// BackupService exports and imports full database snapshots. Snapshots are
// encrypted at rest when a backup key is configured.
type BackupService struct {
	db     *database.DB
	cipher security.SnapshotCipher
}

// NewBackupService creates a new backup service
func NewBackupService(db *database.DB, cipher security.SnapshotCipher) *BackupService {
	return &BackupService{db: db, cipher: cipher}
}

// Export writes a snapshot of all tables to the given path
func (s *BackupService) Export(outputPath string) error {
	backup := &BackupData{
		Version:    "1",
		ExportedAt: time.Now().UTC(),
	}

	var err error
	if backup.Pets, err = s.exportPets(); err != nil {
		return err
	}
	if backup.Updates, err = s.exportUpdates(); err != nil {
		return err
	}
	if backup.Items, err = s.exportItems(); err != nil {
		return err
	}
	if backup.Checklists, err = s.exportChecklists(); err != nil {
		return err
	}
	if backup.Completions, err = s.exportCompletions(); err != nil {
		return err
	}
	if backup.Weights, err = s.exportWeights(); err != nil {
		return err
	}

	payload, err := json.MarshalIndent(backup, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal backup: %w", err)
	}

	sealed, err := s.cipher.Seal(payload)
	if err != nil {
		return fmt.Errorf("failed to encrypt backup: %w", err)
	}

	if err := os.WriteFile(outputPath, sealed, 0600); err != nil {
		return fmt.Errorf("failed to write backup file: %w", err)
	}

	log.Printf("Exported %d pets, %d updates, %d checklists, %d weight records to %s (encrypted=%v)",
		len(backup.Pets), len(backup.Updates), len(backup.Checklists), len(backup.Weights),
		outputPath, s.cipher.Enabled())
	return nil
}

// Import restores a snapshot produced by Export. When clear is set all
// existing rows are removed first; otherwise the import refuses to run on
// a non-empty database.
func (s *BackupService) Import(inputPath string, clear bool) error {
	sealed, err := os.ReadFile(inputPath)
	if err != nil {
		return fmt.Errorf("failed to read backup file: %w", err)
	}

	payload, err := s.cipher.Open(sealed)
	if err != nil {
		return fmt.Errorf("failed to decrypt backup: %w", err)
	}

	var backup BackupData
	if err := json.Unmarshal(payload, &backup); err != nil {
		return fmt.Errorf("failed to parse backup: %w", err)
	}

	var petCount int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM pets").Scan(&petCount); err != nil {
		return err
	}
	if petCount > 0 && !clear {
		return fmt.Errorf("database is not empty; pass clear to replace existing data")
	}

	return s.db.InTx(func(tx *database.Tx) error {
		if clear {
			// Completions and dependents cascade from their parents
			for _, table := range []string{"pets", "checklist_items"} {
				if _, err := tx.Exec("DELETE FROM " + table); err != nil {
					return err
				}
			}
		}

		for _, p := range backup.Pets {
			_, err := tx.Exec(`
				INSERT INTO pets (id, name, species, breed, age, gender, description,
				                  feeding_instructions, medical_notes, image_url, is_emergency, created_at, updated_at)
				VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
				p.ID, p.Name, p.Species, p.Breed, p.Age, p.Gender, p.Description,
				p.FeedingInstructions, p.MedicalNotes, p.ImageURL, p.IsEmergency, p.CreatedAt, p.UpdatedAt)
			if err != nil {
				return fmt.Errorf("failed to restore pet %d: %w", p.ID, err)
			}
		}

		for _, i := range backup.Items {
			_, err := tx.Exec(`
				INSERT INTO checklist_items (id, description, item_type, is_default, species_applicable, options, unit, frequency, created_at)
				VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
				i.ID, i.Description, i.ItemType, i.IsDefault, i.SpeciesApplicable, i.Options, i.Unit, i.Frequency, i.CreatedAt)
			if err != nil {
				return fmt.Errorf("failed to restore checklist item %d: %w", i.ID, err)
			}
		}

		for _, u := range backup.Updates {
			_, err := tx.Exec(`
				INSERT INTO pet_updates (id, pet_id, update_text, update_date, update_time, volunteer_name, created_at)
				VALUES (?, ?, ?, ?, ?, ?, ?)`,
				u.ID, u.PetID, u.UpdateText, u.UpdateDate, u.UpdateTime, u.VolunteerName, u.CreatedAt)
			if err != nil {
				return fmt.Errorf("failed to restore update %d: %w", u.ID, err)
			}
		}

		for _, c := range backup.Checklists {
			_, err := tx.Exec(`
				INSERT INTO checklists (id, pet_id, volunteer_name, completion_date, completion_time, notes, created_at)
				VALUES (?, ?, ?, ?, ?, ?, ?)`,
				c.ID, c.PetID, c.VolunteerName, c.CompletionDate, c.CompletionTime, c.Notes, c.CreatedAt)
			if err != nil {
				return fmt.Errorf("failed to restore checklist %d: %w", c.ID, err)
			}
		}

		for _, cc := range backup.Completions {
			_, err := tx.Exec(`
				INSERT INTO checklist_completions (id, checklist_id, checklist_item_id, completed, value, notes)
				VALUES (?, ?, ?, ?, ?, ?)`,
				cc.ID, cc.ChecklistID, cc.ChecklistItemID, cc.Completed, cc.Value, cc.Notes)
			if err != nil {
				return fmt.Errorf("failed to restore completion %d: %w", cc.ID, err)
			}
		}

		for _, w := range backup.Weights {
			_, err := tx.Exec(`
				INSERT INTO weight_records (id, pet_id, weight, record_date, record_time, volunteer_name, notes, created_at)
				VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
				w.ID, w.PetID, w.Weight, w.RecordDate, w.RecordTime, w.VolunteerName, w.Notes, w.CreatedAt)
			if err != nil {
				return fmt.Errorf("failed to restore weight record %d: %w", w.ID, err)
			}
		}

		return nil
	})
}

func (s *BackupService) exportPets() ([]models.Pet, error) {
	rows, err := s.db.Query(`
		SELECT id, name, species, breed, age, gender, description,
		       feeding_instructions, medical_notes, image_url, is_emergency, created_at, updated_at
		FROM pets ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var pets []models.Pet
	for rows.Next() {
		var p models.Pet
		var breed, gender, description, feeding, medical, imageURL sql.NullString
		var age sql.NullInt64
		if err := rows.Scan(&p.ID, &p.Name, &p.Species, &breed, &age, &gender, &description,
			&feeding, &medical, &imageURL, &p.IsEmergency, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		p.Breed = breed.String
		p.Gender = gender.String
		p.Description = description.String
		p.FeedingInstructions = feeding.String
		p.MedicalNotes = medical.String
		p.ImageURL = imageURL.String
		if age.Valid {
			a := int(age.Int64)
			p.Age = &a
		}
		pets = append(pets, p)
	}
	return pets, rows.Err()
}

func (s *BackupService) exportUpdates() ([]models.PetUpdate, error) {
	rows, err := s.db.Query(`
		SELECT id, pet_id, update_text, update_date, update_time, volunteer_name, created_at
		FROM pet_updates ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var updates []models.PetUpdate
	for rows.Next() {
		var u models.PetUpdate
		var volunteer sql.NullString
		if err := rows.Scan(&u.ID, &u.PetID, &u.UpdateText, &u.UpdateDate, &u.UpdateTime, &volunteer, &u.CreatedAt); err != nil {
			return nil, err
		}
		u.VolunteerName = volunteer.String
		updates = append(updates, u)
	}
	return updates, rows.Err()
}

func (s *BackupService) exportItems() ([]models.ChecklistItem, error) {
	rows, err := s.db.Query(`
		SELECT id, description, item_type, is_default, species_applicable, options, unit, frequency, created_at
		FROM checklist_items ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []models.ChecklistItem
	for rows.Next() {
		var i models.ChecklistItem
		var species, options, unit, frequency sql.NullString
		if err := rows.Scan(&i.ID, &i.Description, &i.ItemType, &i.IsDefault, &species, &options, &unit, &frequency, &i.CreatedAt); err != nil {
			return nil, err
		}
		if species.Valid {
			i.SpeciesApplicable = &species.String
		}
		i.Options = options.String
		i.Unit = unit.String
		i.Frequency = frequency.String
		items = append(items, i)
	}
	return items, rows.Err()
}

func (s *BackupService) exportChecklists() ([]models.Checklist, error) {
	rows, err := s.db.Query(`
		SELECT id, pet_id, volunteer_name, completion_date, completion_time, notes, created_at
		FROM checklists ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var checklists []models.Checklist
	for rows.Next() {
		var c models.Checklist
		var volunteer, notes sql.NullString
		if err := rows.Scan(&c.ID, &c.PetID, &volunteer, &c.CompletionDate, &c.CompletionTime, &notes, &c.CreatedAt); err != nil {
			return nil, err
		}
		c.VolunteerName = volunteer.String
		c.Notes = notes.String
		checklists = append(checklists, c)
	}
	return checklists, rows.Err()
}

func (s *BackupService) exportCompletions() ([]models.ChecklistCompletion, error) {
	rows, err := s.db.Query(`
		SELECT id, checklist_id, checklist_item_id, completed, value, notes
		FROM checklist_completions ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var completions []models.ChecklistCompletion
	for rows.Next() {
		var cc models.ChecklistCompletion
		var value, notes sql.NullString
		if err := rows.Scan(&cc.ID, &cc.ChecklistID, &cc.ChecklistItemID, &cc.Completed, &value, &notes); err != nil {
			return nil, err
		}
		cc.Value = value.String
		cc.Notes = notes.String
		completions = append(completions, cc)
	}
	return completions, rows.Err()
}

func (s *BackupService) exportWeights() ([]models.WeightRecord, error) {
	rows, err := s.db.Query(`
		SELECT id, pet_id, weight, record_date, record_time, volunteer_name, notes, created_at
		FROM weight_records ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var weights []models.WeightRecord
	for rows.Next() {
		var w models.WeightRecord
		var volunteer, notes sql.NullString
		if err := rows.Scan(&w.ID, &w.PetID, &w.Weight, &w.RecordDate, &w.RecordTime, &volunteer, &notes, &w.CreatedAt); err != nil {
			return nil, err
		}
		w.VolunteerName = volunteer.String
		w.Notes = notes.String
		weights = append(weights, w)
	}
	return weights, rows.Err()
}
