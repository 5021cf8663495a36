// Package benefits holds the catalog of social-security benefit types the
// firm handles, including whether each benefit requires a medical or social
// exam. The exam flag drives which reference date the statutory deadline
// calculator uses.
package benefits

import "github.com/MichelCriadorFelix/Andamento-Processual-Felix-e-Castro-Advocacia/internal/models"

// Info describes one benefit type.
type Info struct {
	Label   string
	HasExam bool
}

var catalog = map[models.BenefitType]Info{
	models.BPCIdoso:                  {Label: "BPC Idoso", HasExam: false},
	models.AposentadoriaIdade:        {Label: "Aposentadoria por Idade", HasExam: false},
	models.AposentadoriaContribuicao: {Label: "Aposentadoria por Tempo de Contribuição", HasExam: false},
	models.AposentadoriaEspecial:     {Label: "Aposentadoria Especial", HasExam: false},
	models.AposentadoriaDeficiencia:  {Label: "Aposentadoria Pessoa com Deficiência", HasExam: true},
	models.BPCDeficiente:             {Label: "BPC Deficiente", HasExam: true},
	models.PensaoMorte:               {Label: "Pensão por Morte", HasExam: false},
	models.AuxilioMaternidade:        {Label: "Auxílio-Maternidade", HasExam: false},
	models.AuxilioReclusao:           {Label: "Auxílio-Reclusão", HasExam: false},
	models.AuxilioDoenca:             {Label: "Auxílio-Doença", HasExam: true},
	models.AposentadoriaInvalidez:    {Label: "Aposentadoria por Invalidez", HasExam: true},
	models.AuxilioAcidente:           {Label: "Auxílio-Acidente", HasExam: true},
	models.BenefitOutros:             {Label: "Outros", HasExam: false},
}

// Lookup returns the catalog entry for a benefit type.
func Lookup(bt models.BenefitType) (Info, bool) {
	info, ok := catalog[bt]
	return info, ok
}

// IsValid reports whether bt is a known benefit type.
func IsValid(bt models.BenefitType) bool {
	_, ok := catalog[bt]
	return ok
}

// RequiresExam reports whether the benefit type involves a medical or social
// exam. Unknown types report false.
func RequiresExam(bt models.BenefitType) bool {
	return catalog[bt].HasExam
}

// Catalog returns a copy of the full benefit catalog.
func Catalog() map[models.BenefitType]Info {
	out := make(map[models.BenefitType]Info, len(catalog))
	for k, v := range catalog {
		out[k] = v
	}
	return out
}
