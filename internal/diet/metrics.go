// Package diet computes summary metrics over a user's meal history.
package diet

import "github.com/dietlog/dietlog-go/internal/model"

// ComputeMetrics counts on-diet and off-diet meals and finds the longest run of
// consecutive on-diet meals. meals must be in creation order.
//
// When several runs share the maximal length the first one wins.
func ComputeMetrics(meals []model.Meal) model.Metrics {
	var onDiet int
	best := []model.Meal{}
	var current []model.Meal

	for _, meal := range meals {
		if !meal.OnDiet() {
			current = current[:0]
			continue
		}

		onDiet++
		current = append(current, meal)
		if len(current) > len(best) {
			best = append(best[:0:0], current...)
		}
	}

	return model.Metrics{
		TotalMeals:          len(meals),
		TotalMealsOnDiet:    onDiet,
		TotalMealsOutDiet:   len(meals) - onDiet,
		LongestOnDietStreak: best,
	}
}
