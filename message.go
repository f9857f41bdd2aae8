package oddsum

// CountMessage splits the rows of g into threads chunks and counts every
// chunk in its own goroutine into a private partial sum, which is sent back
// over a channel. The caller adds up exactly one partial sum per chunk.
// No memory is written by more than one goroutine.
func CountMessage(g Grid, threads int) (int, error) {
	chunks, err := Partition(g, threads)
	if err != nil {
		return 0, err
	}
	partials := make(chan int, len(chunks))
	for _, chunk := range chunks {
		go func() {
			sum := 0
			for _, row := range chunk {
				sum += CountRow(row)
			}
			partials <- sum
		}()
	}
	sum := 0
	for range chunks {
		sum += <-partials
	}
	return sum, nil
}
