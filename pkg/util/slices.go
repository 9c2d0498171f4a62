package util

// RemoveDuplicates keeps the first occurrence of every item, skipping anything in ignoreList
func RemoveDuplicates[T comparable](items []T, ignoreList []T) []T {
	present := make(map[T]bool)
	var list []T

	for _, ignore := range ignoreList {
		present[ignore] = true
	}

	for _, item := range items {
		if _, value := present[item]; !value {
			present[item] = true
			list = append(list, item)
		}
	}
	return list
}
