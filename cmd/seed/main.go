package main

import (
	"context"
	"flag"
	"log"
	"time"

	"github.com/sngm3741/latex-free-eats/api/internal/config"
	"github.com/sngm3741/latex-free-eats/api/internal/infrastructure/places"
	"github.com/sngm3741/latex-free-eats/api/internal/infrastructure/storage"
	publicapp "github.com/sngm3741/latex-free-eats/api/internal/public/application"
	"github.com/sngm3741/latex-free-eats/api/internal/public/domain"
)

type seedOptions struct {
	envFile string
	driver  string
	drop    bool
}

func main() {
	opts := parseFlags()

	if err := config.LoadDotEnv(opts.envFile); err != nil {
		log.Fatalf("環境変数の読み込みに失敗しました: %v", err)
	}
	cfg := config.FromEnv()
	if opts.driver != "" {
		cfg.StoreDriver = opts.driver
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("設定が不正です: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	backend, err := storage.Open(ctx, cfg)
	if err != nil {
		log.Fatalf("ストア接続に失敗しました: %v", err)
	}
	defer func() {
		_ = backend.Close(context.Background())
	}()

	if opts.drop {
		removed, err := dropSubmissions(ctx, backend.Submissions)
		if err != nil {
			log.Fatalf("既存レポートの削除に失敗しました: %v", err)
		}
		log.Printf("既存レポートを削除しました: %d 件", removed)
	}

	commands := publicapp.NewSubmissionCommandService(backend.Submissions)
	created, err := seedSubmissions(ctx, commands)
	if err != nil {
		log.Fatalf("レポートの投入に失敗しました: %v", err)
	}

	log.Printf("Seed 完了: submissions=%d store=%s", created, backend.Driver)
}

func parseFlags() seedOptions {
	var opts seedOptions
	flag.StringVar(&opts.envFile, "env", ".env", "読み込む env ファイル")
	flag.StringVar(&opts.driver, "driver", "", "STORE_DRIVER を上書きする (mongo, sqlite, postgres)")
	flag.BoolVar(&opts.drop, "drop", true, "既存レポートを削除してから投入する")
	flag.Parse()
	return opts
}

// sampleReports はサンプルの 2 店舗に対するレポート。投入順がそのまま createdAt 順になる。
func sampleReports() []publicapp.SubmitGloveReportCommand {
	deli := places.SampleRestaurants()[0]
	pizza := places.SampleRestaurants()[1]
	return []publicapp.SubmitGloveReportCommand{
		{
			PlaceID:        deli.PlaceID,
			RestaurantName: deli.Name,
			Address:        deli.FormattedAddress,
			GloveType:      domain.GloveLatex.String(),
			Notes:          "Powdered latex gloves at the sandwich station.",
		},
		{
			PlaceID:        pizza.PlaceID,
			RestaurantName: pizza.Name,
			Address:        pizza.FormattedAddress,
			GloveType:      domain.GloveVinyl.String(),
			Notes:          "Clear vinyl gloves for toppings.",
			SubmittedBy:    "seed",
		},
		{
			PlaceID:        deli.PlaceID,
			RestaurantName: deli.Name,
			Address:        deli.FormattedAddress,
			GloveType:      domain.GloveNitrile.String(),
			Notes:          "Staff switched to blue nitrile gloves.",
			SubmittedBy:    "seed",
		},
	}
}

func seedSubmissions(ctx context.Context, commands publicapp.SubmissionCommandService) (int, error) {
	reports := sampleReports()
	for _, report := range reports {
		if _, err := commands.Submit(ctx, report); err != nil {
			return 0, err
		}
		// createdAt の順序を保証するため、ミリ秒精度のストアでも衝突しない間隔を空ける。
		time.Sleep(2 * time.Millisecond)
	}
	return len(reports), nil
}

func dropSubmissions(ctx context.Context, repo publicapp.SubmissionRepository) (int, error) {
	existing, err := repo.Find(ctx, publicapp.SubmissionFilter{})
	if err != nil {
		return 0, err
	}
	for _, submission := range existing {
		if err := repo.Delete(ctx, submission.ID); err != nil {
			return 0, err
		}
	}
	return len(existing), nil
}
