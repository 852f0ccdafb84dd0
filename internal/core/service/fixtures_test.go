package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/jessicacaley/oo-ride-share/internal/core/domain"
)

type memSource map[domain.Kind][]domain.Record

func (m memSource) Records(ctx context.Context, kind domain.Kind) ([]domain.Record, error) {
	rows, ok := m[kind]
	if !ok {
		return nil, fmt.Errorf("no %s fixture", kind)
	}
	return rows, nil
}

type failingSource struct{ err error }

func (f failingSource) Records(ctx context.Context, kind domain.Kind) ([]domain.Record, error) {
	return nil, f.err
}

var errSourceDown = errors.New("source unavailable")

func passengerRows() []domain.Record {
	rows := make([]domain.Record, 0, 8)
	for i := 1; i <= 8; i++ {
		rows = append(rows, domain.Record{
			"id":        fmt.Sprint(i),
			"name":      fmt.Sprintf("Passenger %d", i),
			"phone_num": fmt.Sprintf("555-010-%04d", i),
		})
	}
	return rows
}

func driverRows() []domain.Record {
	return []domain.Record{
		{"id": "1", "name": "Driver 1 (unavailable)", "vin": "WBWSS52P9NEYLVDE9", "status": "UNAVAILABLE"},
		{"id": "2", "name": "Driver 2", "vin": "1C9YKRAL0AHGP2NSJ", "status": "AVAILABLE"},
		{"id": "3", "name": "Driver 3 (no trips)", "vin": "1F4S0T2HXGVNSWJ7T", "status": "AVAILABLE"},
	}
}

func tripRows() []domain.Record {
	return []domain.Record{
		{"id": "1", "driver_id": "1", "passenger_id": "1", "start_time": "2018-05-25 11:52:40 -0700", "end_time": "2018-05-25 12:25:00 -0700", "cost": "10", "rating": "5"},
		{"id": "2", "driver_id": "1", "passenger_id": "2", "start_time": "2018-07-23 04:39:00 -0700", "end_time": "2018-07-23 04:55:00 -0700", "cost": "7", "rating": "3"},
		{"id": "3", "driver_id": "2", "passenger_id": "4", "start_time": "2018-06-11 22:22:00 -0700", "end_time": "2018-06-11 22:50:00 -0700", "cost": "5", "rating": "1"},
		{"id": "4", "driver_id": "2", "passenger_id": "4", "start_time": "2018-08-12 15:04:00 -0700", "end_time": "2018-08-12 15:14:00 -0700", "cost": "10", "rating": "3"},
		{"id": "5", "driver_id": "1", "passenger_id": "6", "start_time": "2018-08-05 08:58:00 -0700", "end_time": "2018-08-05 09:30:00 -0700", "cost": "32", "rating": "1"},
	}
}

func fixtureSource() memSource {
	return memSource{
		domain.KindDriver:    driverRows(),
		domain.KindPassenger: passengerRows(),
		domain.KindTrip:      tripRows(),
	}
}
