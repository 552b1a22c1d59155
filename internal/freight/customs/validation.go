package customs

import (
	"strings"

	"github.com/cargodesk/cargodesk/internal/freight/codes"
)

var hsSeparators = strings.NewReplacer(".", "", "-", "", " ", "")

func toModel(req Request) (Declaration, error) {
	req.DeclarationNo = codes.Normalize(req.DeclarationNo)
	req.DeclarationType = codes.Normalize(req.DeclarationType)
	req.BLNo = codes.Normalize(req.BLNo)
	req.Declarant = strings.TrimSpace(req.Declarant)
	req.HSCode = hsSeparators.Replace(req.HSCode)
	req.Currency = codes.Normalize(req.Currency)
	req.Status = codes.Normalize(req.Status)
	if err := codes.Check(req); err != nil {
		return Declaration{}, err
	}
	date, err := codes.ParseDate("declaration_date", req.DeclarationDate)
	if err != nil {
		return Declaration{}, err
	}
	status := Status(req.Status)
	if status == "" {
		status = StatusFiled
	}
	if status == StatusCleared && req.DeclaredValue == nil {
		return Declaration{}, codes.Invalid("declared_value", "is required before clearance")
	}
	return Declaration{
		DeclarationNo:   req.DeclarationNo,
		DeclarationType: Type(req.DeclarationType),
		BLNo:            req.BLNo,
		Declarant:       req.Declarant,
		HSCode:          req.HSCode,
		DeclaredValue:   req.DeclaredValue,
		Currency:        req.Currency,
		Status:          status,
		DeclarationDate: date,
	}, nil
}
