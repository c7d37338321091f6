// Package domain contains the study-planning entities: subjects and their
// topics, the daily tasks the planner emits and the schedule plan that holds
// them. It has no dependencies on storage or transport.
package domain
