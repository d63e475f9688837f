package client

import (
	"context"
	"fmt"
	"runtime"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/canvastools/canvas-as-code/internal/pkg/log"
)

const REQUESTS_BUFFER_SIZE = 10000

// Pool of the asynchronous HTTP requests. When processing a response, a new request can be sent.
// The request is registered by the Request method and queued by the request Send method.
type Pool struct {
	id              int // pool id -> for logs
	client          *Client
	logger          log.Logger
	ctx             context.Context // context of the parallel work
	workers         *errgroup.Group // error group -> if one worker fails, all will be stopped
	counter         sync.WaitGroup  // detect when all requests are processed (count of the requests = count of the processed responses)
	sendersCount    int
	processorsCount int
	requestsLock    *sync.Mutex
	allRequests     []*Request    // to check that the Send method was called on each registered request
	done            chan struct{} // channel for "all requests are processed" notification
	requests        chan *Request
	responses       chan *Response
}

func (c *Client) NewPool(logger log.Logger) *Pool {
	workers, ctx := errgroup.WithContext(c.parentCtx)
	return &Pool{
		id:              c.poolIdCounter.IncAndGet(),
		client:          c,
		logger:          logger,
		ctx:             ctx,
		workers:         workers,
		counter:         sync.WaitGroup{},
		sendersCount:    MaxIdleConns,
		processorsCount: runtime.NumCPU(),
		requestsLock:    &sync.Mutex{},
		done:            make(chan struct{}),
		requests:        make(chan *Request, REQUESTS_BUFFER_SIZE),
		responses:       make(chan *Response, 1),
	}
}

// Request registers the request in the pool, it is queued when its Send method is called.
func (p *Pool) Request(request *Request) *Request {
	p.requestsLock.Lock()
	defer p.requestsLock.Unlock()
	request.sender = p
	p.allRequests = append(p.allRequests, request)
	return request
}

// Send adds the request to the queue.
func (p *Pool) Send(request *Request) {
	if request.sender != p {
		p.Request(request)
	}
	if request.IsSent() {
		return
	}
	if len(p.requests) >= REQUESTS_BUFFER_SIZE-1 {
		panic(fmt.Errorf(`Too many (%d) queued reuests in HTTP pool.`, REQUESTS_BUFFER_SIZE))
	}
	request.MarkSent()
	p.counter.Add(1)
	p.log(`queued %s`, request.Desc())
	p.requests <- request
}

func (p *Pool) StartAndWait() error {
	p.start()
	err := p.wait()
	if err == nil {
		p.checkAllRequestsSent()
	}
	return err
}

// wait until all requests are processed.
func (p *Pool) wait() error {
	defer close(p.responses)
	defer close(p.requests)
	return p.workers.Wait()
}

func (p *Pool) start() {
	// Work is done -> all responses are processed
	go func() {
		defer close(p.done)
		p.counter.Wait()
		p.log(`all done`)
	}()

	// Start senders
	for i := 0; i < p.sendersCount; i++ {
		p.workers.Go(func() error {
			for {
				select {
				case <-p.done:
					// All done -> end
					return nil
				case <-p.ctx.Done():
					// Context closed -> some error -> end
					return nil
				case request := <-p.requests:
					// Wait for send and write to responses
					select {
					case <-p.done:
						// All done -> end
						return nil
					case <-p.ctx.Done():
						// Context closed -> some error -> end
						return nil
					case p.responses <- p.send(request):
						continue
					}
				}
			}
		})
	}

	// Start processors
	for i := 0; i < p.processorsCount; i++ {
		p.workers.Go(func() error {
			for {
				select {
				case <-p.done:
					// All done -> end
					return nil
				case <-p.ctx.Done():
					// Context closed -> some error -> end
					return nil
				case response := <-p.responses:
					if err := p.process(response); err != nil {
						// Error when processing response
						return err
					}
				}
			}
		})
	}
}

func (p *Pool) send(request *Request) (response *Response) {
	defer func() {
		if response.HasError() {
			p.log(`failed %s | %s`, request.Desc(), response.Err())
		} else {
			p.log(`finished %s`, request.Desc())
		}
	}()

	p.log(`started %s`, request.Desc())
	request.SetContext(p.ctx)
	restyResponse, err := request.Request.Send()
	return NewResponse(request, restyResponse, err)
}

func (p *Pool) process(response *Response) (err error) {
	request := response.Request
	defer p.counter.Done() // mark request processed
	defer func() {
		if err == nil {
			p.log(`processed %s`, request.Desc())
		} else {
			p.log(`processed %s | %s`, request.Desc(), err)
		}
	}()

	request.MarkDone(response)
	request.invokeListeners()

	// Error can be set by the send or by a listener
	return response.Err()
}

// checkAllRequestsSent panics if the Send method was not called on a registered request.
func (p *Pool) checkAllRequestsSent() {
	p.requestsLock.Lock()
	defer p.requestsLock.Unlock()
	for _, request := range p.allRequests {
		if !request.IsSent() {
			panic(fmt.Errorf(`%s was not sent - Send() method was not called`, request.Desc()))
		}
	}
}

func (p *Pool) log(template string, args ...interface{}) {
	p.logger.Debugf("HTTP-POOL\t"+template, args...)
}
