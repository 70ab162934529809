package main

import (
	"context"
	"log"
	"os"

	"campusbook/internal/database"
	"campusbook/internal/domain"
	"campusbook/internal/repository"
)

// Seeds a development database with the department's bookable inventory.
func main() {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		dsn = "campusbook.db"
	}

	db, err := database.Connect(dsn)
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}

	log.Println("Running migrations...")
	if err := repository.Migrate(db); err != nil {
		log.Fatal("Migrate failed:", err)
	}

	log.Println("Cleaning old data...")
	db.Exec("DELETE FROM bookings")
	db.Exec("DELETE FROM time_slots")
	db.Exec("DELETE FROM resources")

	ctx := context.Background()
	resources := repository.NewResourceRepository(db)
	slots := repository.NewTimeSlotRepository(db)

	log.Println("Creating equipment...")
	equipment := []domain.Resource{
		{Kind: domain.KindEquipment, Name: "Oscilloscope (Tektronix TBS1052C)", Location: "Electronics Lab Store", Quantity: 6, RequiresApproval: false, IsActive: true},
		{Kind: domain.KindEquipment, Name: "Raspberry Pi 5 Kit", Location: "Equipment Desk, Room 104", Quantity: 15, RequiresApproval: false, IsActive: true},
		{Kind: domain.KindEquipment, Name: "Thermal Imaging Camera", Location: "Equipment Desk, Room 104", Quantity: 2, RequiresApproval: true, IsActive: true},
		{Kind: domain.KindEquipment, Name: "DSLR Camera Kit", Location: "Media Store", Quantity: 4, RequiresApproval: true, IsActive: true},
	}
	for i := range equipment {
		if err := resources.Create(ctx, &equipment[i]); err != nil {
			log.Fatal("seed equipment:", err)
		}
	}

	log.Println("Creating labs...")
	labs := []domain.Resource{
		{Kind: domain.KindLab, Name: "Networks Laboratory", Location: "Building B, Room 210", Capacity: 24, Quantity: 1, RequiresApproval: true, IsActive: true},
		{Kind: domain.KindLab, Name: "Robotics Laboratory", Location: "Building B, Room 215", Capacity: 16, Quantity: 1, RequiresApproval: true, IsActive: true},
	}
	for i := range labs {
		if err := resources.Create(ctx, &labs[i]); err != nil {
			log.Fatal("seed labs:", err)
		}
	}

	log.Println("Creating lab time slots...")
	for _, lab := range labs {
		windows := []struct {
			label, start, end string
		}{
			{"Morning", "09:00", "11:00"},
			{"Midday", "11:00", "13:00"},
			{"Afternoon", "14:00", "16:00"},
		}
		for pos, wnd := range windows {
			slot := domain.TimeSlot{
				ResourceID: lab.ID,
				Label:      wnd.label,
				StartTime:  wnd.start,
				EndTime:    wnd.end,
				Position:   pos,
			}
			if err := slots.Create(ctx, &slot); err != nil {
				log.Fatal("seed slots:", err)
			}
		}
	}

	log.Println("Creating rooms...")
	rooms := []domain.Resource{
		{Kind: domain.KindRoom, Name: "Seminar Room 1", Location: "Building A, Room 012", Capacity: 30, Quantity: 1, RequiresApproval: false, IsActive: true},
		{Kind: domain.KindRoom, Name: "Seminar Room 2", Location: "Building A, Room 014", Capacity: 30, Quantity: 1, RequiresApproval: false, IsActive: true},
		{Kind: domain.KindRoom, Name: "Conference Room", Location: "Building A, Room 101", Capacity: 60, Quantity: 1, RequiresApproval: true, IsActive: true},
	}
	for i := range rooms {
		if err := resources.Create(ctx, &rooms[i]); err != nil {
			log.Fatal("seed rooms:", err)
		}
	}

	log.Println("Seed complete.")
}
