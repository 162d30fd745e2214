// Package submissionqueue implements the contest submission queue.
//
// Photos enter the queue as submissions and are promoted to "current" one at
// a time: at random, by id, or by a verified paid skip. Promotion is a single
// conditional store update so each submission is published at most once.
// Successful promotions emit submission.promoted for the push worker.
package submissionqueue
