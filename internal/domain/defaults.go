package domain

import "time"

// seededAt is the creation time reported for the built-in exercises.
var seededAt = time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)

// DefaultExercises returns fresh copies of the four built-in exercises, in seed order.
// Every call returns new instances so independent stores never share entities.
func DefaultExercises() []*Exercise {
	return []*Exercise{
		{
			ID:        "1",
			Name:      "Bench Press",
			Desc:      "A compound chest exercise targeting the pectorals, triceps, and shoulders. Lie on a bench, lower the barbell to your chest, and press it back up.",
			Image:     BundledImage("bench_press.jpeg"),
			CreatedAt: seededAt,
		},
		{
			ID:        "2",
			Name:      "Deadlift",
			Desc:      "A full-body compound movement engaging the posterior chain. Lift the barbell from the ground to a standing position using hips and legs.",
			Image:     BundledImage("deadlift.jpeg"),
			CreatedAt: seededAt,
		},
		{
			ID:        "3",
			Name:      "Hammer Curl",
			Desc:      "An isolation exercise targeting the biceps and brachialis. Hold dumbbells with a neutral grip and curl them upward without rotating the wrist.",
			Image:     BundledImage("hammer_curl.jpeg"),
			CreatedAt: seededAt,
		},
		{
			ID:        "4",
			Name:      "Overhead Press",
			Desc:      "A shoulder-focused compound movement. Press a barbell or dumbbells overhead while keeping your core tight and back neutral.",
			Image:     BundledImage("overhead_press.jpeg"),
			CreatedAt: seededAt,
		},
	}
}
