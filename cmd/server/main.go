package main

import (
	_ "github.com/lib/pq"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/go-banco/banco/cmd/httpserver"
	"github.com/go-banco/banco/internal/accountrepo"
	"github.com/go-banco/banco/internal/bankrepo"
	"github.com/go-banco/banco/internal/domain"
	"github.com/go-banco/banco/internal/middleware"
	"github.com/go-banco/banco/pkg/configpkg"
	"github.com/go-banco/banco/pkg/dbpkg"
)

func main() {
	config, err := configpkg.Load("./configs")
	if err != nil {
		log.Fatal().Err(err).Msg("cannot load config")
	}

	logger := middleware.CreateLogger(config)

	var server *httpserver.Server

	switch config.DBDriver {
	case "memory":
		accountRepo := accountrepo.NewRepoMem()
		bankRepo := bankrepo.NewRepoMem()
		seedFixtures(accountRepo, bankRepo, config.BankName)

		server, err = httpserver.NewInMemory(accountRepo, bankRepo, logger, config)
	default:
		conn, dbErr := dbpkg.Setup(config.DBDriver, config.DBSource)
		if dbErr != nil {
			logger.Fatal().Err(dbErr).Msg("cannot connect to db")
		}

		server, err = httpserver.New(conn, logger, config)
	}

	if err != nil {
		logger.Fatal().Err(err).Msg("cannot create server")
	}

	if err := server.Start(); err != nil {
		logger.Fatal().Err(err).Msg("cannot start server")
	}
}

// seedFixtures installs the development sample ledger: one bank with two
// funded accounts.
func seedFixtures(accounts *accountrepo.RepoMem, banks *bankrepo.RepoMem, bankName string) {
	bank := domain.Bank{ID: 1, Name: bankName}
	first := domain.Account{ID: 1, Owner: "Andrés", Balance: decimal.RequireFromString("1000.00")}
	second := domain.Account{ID: 2, Owner: "John", Balance: decimal.RequireFromString("2000.00")}

	bank.AddAccount(&first)
	bank.AddAccount(&second)

	banks.Seed(bank)
	accounts.Seed(first, second)
}
