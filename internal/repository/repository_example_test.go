package repository_test

import (
	"context"
	"fmt"
	"log"

	"github.com/levinOo/fleet-stats-collector/internal/models"
	"github.com/levinOo/fleet-stats-collector/internal/repository"
)

// Example_memStorageWriteStats демонстрирует сохранение партии в памяти.
func Example_memStorageWriteStats() {
	storage := repository.NewMemStorage()

	batch := []*models.StatsPackage{
		{
			TimestampMillis: 1700000000000,
			Machine:         "web-01",
			FloatSamples: []models.SampleValue[float32]{
				{Name: "cpu_usage_percentage", Value: 60.6, Quality: models.QualityGood},
				{Name: "available_memory_mbytes", Value: 9.0, Quality: models.QualityInvalid},
			},
		},
	}

	if err := storage.WriteStats(context.Background(), batch); err != nil {
		log.Fatal(err)
	}

	cpu := storage.FloatRows()[repository.RowKey{Machine: "web-01", StatName: "cpu_usage_percentage", Instant: 1700000000000}]
	fmt.Printf("cpu: %.1f (%s)\n", cpu.Value, cpu.Quality)
	// Output: cpu: 60.6 (good)
}

// Example_memStorageCredentials демонстрирует управление учётными данными.
func Example_memStorageCredentials() {
	storage := repository.NewMemStorage(models.Credential{Machine: "web-02", Key: "secret-2"})
	storage.AddCredential(models.Credential{Machine: "web-01", Key: "secret-1"})

	creds, err := storage.LoadCredentials(context.Background())
	if err != nil {
		log.Fatal(err)
	}

	for _, c := range creds {
		fmt.Println(c.Machine)
	}
	// Output:
	// web-01
	// web-02
}

// Example_batchIDGenerator демонстрирует выдачу идентификаторов партий.
func Example_batchIDGenerator() {
	ids := repository.NewBatchIDGeneratorFrom(1000)

	fmt.Println(ids.Next(), ids.Next())
	// Output: 1001 1002
}
