// Package charts builds interactive figure descriptions from article
// datasets: histograms, cumulative time series, scatter plots with
// polynomial or linear fits, and the article/response comparison plot.
//
// Builders are pure. They never mutate the table they are given; any
// sorting or derived column lands on an internal copy.
package charts
