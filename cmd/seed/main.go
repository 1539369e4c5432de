// Command seed fills the database with demo goals and transactions.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/brianvoe/gofakeit/v6"

	"piggybank/internal/config"
	"piggybank/internal/database"
	"piggybank/internal/logger"
	"piggybank/internal/models"
	"piggybank/internal/services"
)

func main() {
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	goals := flag.Int("goals", 5, "number of goals to create")
	perGoal := flag.Int("transactions", 10, "transactions per goal")
	seed := flag.Int64("seed", 0, "random seed (0 picks one)")
	flag.Parse()

	if err := run(*goals, *perGoal, *seed); err != nil {
		logger.Get().Fatalf("Seed error: %v", err)
	}
}

func run(goalCount, perGoal int, seed int64) error {
	log := logger.Get()

	if goalCount < 0 || perGoal < 0 {
		return fmt.Errorf("goals and transactions must not be negative")
	}
	gofakeit.Seed(seed)

	appConfig, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	dbConfig, err := database.NewConfig(appConfig)
	if err != nil {
		return err
	}
	dbManager, err := database.NewManager(dbConfig)
	if err != nil {
		return err
	}
	defer dbManager.Close()

	if err := dbManager.Migrate(); err != nil {
		return err
	}

	db := dbManager.DB()
	balances := services.NewBalanceService()
	goalService := services.NewGoalService(db, balances)
	transactionService := services.NewTransactionService(db, balances)
	if err := services.NewSettingsService(db).EnsureDefaults(); err != nil {
		return err
	}

	for i := 0; i < goalCount; i++ {
		description := gofakeit.Sentence(8)
		targetDate := gofakeit.FutureDate()
		goal, err := goalService.CreateGoal(services.GoalInput{
			Title:        gofakeit.ProductName(),
			TargetAmount: gofakeit.Price(5000, 200000),
			TargetDate:   &targetDate,
			Description:  &description,
		})
		if err != nil {
			return fmt.Errorf("failed to create goal: %w", err)
		}

		for j := 0; j < perGoal; j++ {
			txType := models.TransactionTypeDeposit
			if gofakeit.Number(1, 5) == 1 {
				txType = models.TransactionTypeWithdrawal
			}
			note := gofakeit.Phrase()
			if _, err := transactionService.CreateTransaction(services.TransactionInput{
				GoalID:          goal.ID,
				Amount:          gofakeit.Price(100, 5000),
				TransactionType: txType,
				Description:     &note,
			}); err != nil {
				return fmt.Errorf("failed to create transaction for goal %d: %w", goal.ID, err)
			}
		}

		log.Infow("Seeded goal", "goal_id", goal.ID, "title", goal.Title, "transactions", perGoal)
	}

	log.Infof("Seeded %d goal(s) with %d transaction(s) each", goalCount, perGoal)
	return nil
}
