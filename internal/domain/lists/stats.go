package lists

// Summarize rolls a list's items up into totals and status histograms.
// Histogram buckets accumulate quantity, so each histogram sums to the total
// number of models in the list.
func Summarize(items []ItemDetail) Statistics {
	var stats Statistics
	stats.TotalItems = len(items)
	for _, item := range items {
		if item.PointsValue != nil {
			stats.TotalPoints += *item.PointsValue * item.Quantity
		}
		if item.AssemblyStatus.Valid() {
			stats.AssemblyProgress[item.AssemblyStatus] += item.Quantity
		}
		if item.PaintingStatus.Valid() {
			stats.PaintingProgress[item.PaintingStatus] += item.Quantity
		}
	}
	return stats
}
