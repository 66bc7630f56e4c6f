// +build ignore

package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

type BusinessGeocodeEvent struct {
	EventID    uuid.UUID `json:"event_id"`
	BusinessID string    `json:"business_id"`
	Country    string    `json:"country"`
	State      *string   `json:"state,omitempty"`
	City       *string   `json:"city,omitempty"`
	Address    *string   `json:"address,omitempty"`
	Language   string    `json:"language,omitempty"`
}

func ptr[T any](v T) *T {
	return &v
}

func main() {
	redisAddr := flag.String("redis", "localhost:6379", "Redis address for streams")
	businessID := flag.String("business", "test-business-1", "Business id to geocode")
	flag.Parse()

	client := redis.NewClient(&redis.Options{
		Addr: *redisAddr,
	})
	defer client.Close()

	ctx := context.Background()

	// Проверка подключения
	if err := client.Ping(ctx).Err(); err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}

	// Тестовое событие (Port-au-Prince address)
	event := BusinessGeocodeEvent{
		EventID:    uuid.New(),
		BusinessID: *businessID,
		Country:    "Haiti",
		State:      ptr("Ouest"),
		City:       ptr("Port-au-Prince"),
		Address:    ptr("Rue Capois"),
		Language:   "fr",
	}

	data, err := json.Marshal(event)
	if err != nil {
		log.Fatalf("Failed to marshal event: %v", err)
	}

	// Публикация в стрим
	result, err := client.XAdd(ctx, &redis.XAddArgs{
		Stream: "stream:business:geocode",
		Values: map[string]interface{}{
			"data": string(data),
		},
	}).Result()
	if err != nil {
		log.Fatalf("Failed to publish event: %v", err)
	}

	fmt.Printf("✅ Event published successfully!\n")
	fmt.Printf("   Stream: stream:business:geocode\n")
	fmt.Printf("   Message ID: %s\n", result)
	fmt.Printf("   Business ID: %s\n", event.BusinessID)
	fmt.Printf("   Address: %s, %s, %s\n", *event.Address, *event.City, event.Country)

	// Ожидание ответа
	fmt.Printf("\n⏳ Waiting for response in stream:business:geocode:done...\n")

	timeout := time.After(30 * time.Second)
	ticker := time.NewTicker(1 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-timeout:
			fmt.Println("❌ Timeout waiting for response")
			return
		case <-ticker.C:
			results, err := client.XRead(ctx, &redis.XReadArgs{
				Streams: []string{"stream:business:geocode:done", "0"},
				Count:   10,
				Block:   0,
			}).Result()

			if err != nil && err != redis.Nil {
				continue
			}

			for _, stream := range results {
				for _, msg := range stream.Messages {
					dataStr, ok := msg.Values["data"].(string)
					if !ok {
						continue
					}

					var response map[string]interface{}
					if err := json.Unmarshal([]byte(dataStr), &response); err != nil {
						continue
					}

					if eventID, ok := response["event_id"].(string); ok {
						if eventID == event.EventID.String() {
							fmt.Printf("\n✅ Response received!\n")
							prettyJSON, _ := json.MarshalIndent(response, "", "  ")
							fmt.Printf("%s\n", prettyJSON)
							return
						}
					}
				}
			}
		}
	}
}
