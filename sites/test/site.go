package test

import (
	"fmt"

	"github.com/rcpch/national-paediatric-diabetes-audit-sub001/pointer"
	"github.com/rcpch/national-paediatric-diabetes-audit-sub001/sites"
	"github.com/rcpch/national-paediatric-diabetes-audit-sub001/test"
)

func RandomUnitCode() string {
	return fmt.Sprintf("PZ%03d", test.Faker.IntBetween(1, 999))
}

func Random() sites.Site {
	return sites.Site{
		UnitCode:          RandomUnitCode(),
		GpPracticeOdsCode: pointer.FromAny(fmt.Sprintf("G%05d", test.Faker.IntBetween(0, 99999))),
	}
}

func ForUnit(unitCode string) sites.Site {
	s := Random()
	s.UnitCode = unitCode
	return s
}
