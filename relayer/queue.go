// Copyright 2021 Optakt Labs OÜ
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not
// use this file except in compliance with the License. You may obtain a copy of
// the License at
//
//     https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS, WITHOUT
// WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the
// License for the specific language governing permissions and limitations under
// the License.

package relayer

import (
	"sync"

	"github.com/gammazero/deque"
)

// queue is a FIFO queue of relay jobs that can be used concurrently.
type queue struct {
	mutex *sync.Mutex
	deque *deque.Deque
}

func newQueue() *queue {
	q := queue{
		mutex: &sync.Mutex{},
		deque: deque.New(),
	}
	return &q
}

func (q *queue) Len() int {
	q.mutex.Lock()
	defer q.mutex.Unlock()
	return q.deque.Len()
}

func (q *queue) PushBack(j *job) {
	q.mutex.Lock()
	defer q.mutex.Unlock()
	q.deque.PushBack(j)
}

// PopFront returns the oldest job, or nil if the queue is empty.
func (q *queue) PopFront() *job {
	q.mutex.Lock()
	defer q.mutex.Unlock()
	if q.deque.Len() == 0 {
		return nil
	}
	return q.deque.PopFront().(*job)
}
