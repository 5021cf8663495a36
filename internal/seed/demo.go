package seed

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/MichelCriadorFelix/Andamento-Processual-Felix-e-Castro-Advocacia/internal/models"
	"github.com/MichelCriadorFelix/Andamento-Processual-Felix-e-Castro-Advocacia/internal/progression"
	"github.com/MichelCriadorFelix/Andamento-Processual-Felix-e-Castro-Advocacia/internal/repository"
)

// DemoPIN is the PIN every generated demo client can log in with.
const DemoPIN = "123456"

var demoCaseTitles = []string{
	"Auxílio-Doença",
	"Aposentadoria por Idade",
	"BPC Idoso",
	"Pensão por Morte",
	"Revisão de Benefício",
	"Verbas Rescisórias",
}

var demoBenefits = []models.BenefitType{
	models.AuxilioDoenca,
	models.AposentadoriaIdade,
	models.BPCIdoso,
	models.PensaoMorte,
}

// Demo generates fake clients with one or two in-flight cases each. Templates
// must be seeded first. Intended for development only.
func Demo(ctx context.Context, repo repository.Repository, clients int, seedValue int64) error {
	faker := gofakeit.New(seedValue)

	templates, err := repo.ListTemplates(ctx)
	if err != nil {
		return err
	}
	if len(templates) == 0 {
		return fmt.Errorf("no templates on file, run the template seed first")
	}

	pinHash, err := bcrypt.GenerateFromPassword([]byte(DemoPIN), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	created := 0
	for i := 0; i < clients; i++ {
		userID, _ := uuid.NewV7()
		user := &models.User{
			ID:        userID.String(),
			Name:      faker.Name(),
			Role:      models.RoleClient,
			PINHash:   string(pinHash),
			Email:     faker.Email(),
			WhatsApp:  faker.Phone(),
			CreatedAt: time.Now(),
		}
		if err := repo.CreateUser(ctx, user); err != nil {
			// Faker may repeat a name; skip and move on.
			continue
		}

		for range faker.IntRange(1, 2) {
			tmpl := templates[faker.IntRange(0, len(templates)-1)]

			var benefit *models.BenefitType
			if tmpl.Family == models.FamilyBenefits {
				b := demoBenefits[faker.IntRange(0, len(demoBenefits)-1)]
				benefit = &b
			}

			caseID, _ := uuid.NewV7()
			c := &models.LegalCase{
				ID:          caseID.String(),
				ClientID:    user.ID,
				ClientName:  user.Name,
				TemplateID:  tmpl.ID,
				Family:      tmpl.Family,
				Venue:       tmpl.Venue,
				BenefitType: benefit,
				Title:       demoCaseTitles[faker.IntRange(0, len(demoCaseTitles)-1)],
				StartDate:   time.Now().AddDate(0, 0, -faker.IntRange(5, 150)),
				Status:      models.CaseActive,
				Steps:       progression.Instantiate(tmpl.Steps),
			}
			if err := repo.CreateCase(ctx, c); err != nil {
				return err
			}
		}
		created++
	}

	slog.InfoContext(ctx, "demo seed complete", "clients", created, "pin", DemoPIN)
	return nil
}
