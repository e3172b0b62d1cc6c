package command

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/fx"

	"github.com/rcpch/national-paediatric-diabetes-audit-sub001/patients/seed"
)

var patientsSeedParams = struct {
	UnitCode string
	Count    int
	Date     string
	Seed     int64
}{}

var patientsSeedCmd = &cobra.Command{
	Use:   "seed {unitCode}",
	Args:  cobra.ExactArgs(1),
	Short: "Seed a unit with a synthetic cohort",
	Long:  "The seed command stores randomly generated patients and visits for the unit",
	RunE: func(cmd *cobra.Command, args []string) error {
		patientsSeedParams.UnitCode = strings.ToUpper(strings.TrimSpace(args[0]))
		return Run(seedPatients, fx.Provide(seed.NewSeeder))
	},
}

func init() {
	patientsSeedCmd.Flags().IntVarP(&patientsSeedParams.Count, "count", "n", 50, "Number of patients to generate")
	patientsSeedCmd.Flags().StringVar(&patientsSeedParams.Date, "date", "", "Reference date (YYYY-MM-DD) of the audit year to fill, defaults to today")
	patientsSeedCmd.Flags().Int64Var(&patientsSeedParams.Seed, "seed", 0, "Random seed, defaults to the current time")

	patientsCmd.AddCommand(patientsSeedCmd)
}

func seedPatients(seeder *seed.Seeder) error {
	referenceDate, err := parseReferenceDate(patientsSeedParams.Date)
	if err != nil {
		return err
	}

	randomSeed := patientsSeedParams.Seed
	if randomSeed == 0 {
		randomSeed = time.Now().UnixNano()
	}

	summary, err := seeder.Seed(context.TODO(), seed.Options{
		UnitCode:      patientsSeedParams.UnitCode,
		Count:         patientsSeedParams.Count,
		ReferenceDate: referenceDate,
		Seed:          randomSeed,
	})
	if err != nil {
		return err
	}

	fmt.Printf("Created %v patients with %v visits in %s (seed %d)\n", summary.Patients, summary.Visits, patientsSeedParams.UnitCode, randomSeed)
	return nil
}
