package simulate

import (
	"fmt"
	"math"
	"math/rand"
)

// ChartData is a synthetic traffic series for the dashboard chart widget.
type ChartData struct {
	Labels    []string `json:"labels"`
	Sent      []int    `json:"sentData"`
	Delivered []int    `json:"deliveredData"`
	Failed    []int    `json:"failedData"`
	Blocked   []int    `json:"blockedData"`
}

// ChartSeries generates mock send-volume data for the requested range:
// hourly points for "24h", daily points otherwise.
func ChartSeries(timeRange string) ChartData {
	var data ChartData

	if timeRange == "24h" {
		for i := 0; i < 24; i++ {
			data.Labels = append(data.Labels, fmt.Sprintf("%02d", i))

			base := 100 + math.Sin(float64(i)/3)*50 + rand.Float64()*30
			if i > 8 && i < 20 {
				base += 50
			}
			appendPoint(&data, int(math.Round(base)))
		}
		return data
	}

	days := []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}
	for _, day := range days {
		data.Labels = append(data.Labels, day)

		base := 1000 + rand.Float64()*500
		appendPoint(&data, int(math.Round(base)))
	}
	return data
}

func appendPoint(data *ChartData, sent int) {
	data.Sent = append(data.Sent, sent)
	data.Delivered = append(data.Delivered, int(math.Round(float64(sent)*(0.92+rand.Float64()*0.05))))
	data.Failed = append(data.Failed, int(math.Round(float64(sent)*(0.01+rand.Float64()*0.02))))
	data.Blocked = append(data.Blocked, int(math.Round(float64(sent)*(0.005+rand.Float64()*0.01))))
}
