package user

import "github.com/BruksfildServices01/orders-api/internal/httperr"

type Sex string

const (
	SexMale   Sex = "MALE"
	SexFemale Sex = "FEMALE"
	SexOther  Sex = "OTHER"
)

func ParseSex(v string) (Sex, error) {
	switch Sex(v) {
	case SexMale, SexFemale, SexOther:
		return Sex(v), nil
	}
	return "", httperr.ErrBusiness("invalid_sex")
}
